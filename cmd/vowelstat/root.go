package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/terratensor/vowelstat/internal/config"
	"github.com/terratensor/vowelstat/internal/shell"
)

// NewRootCmd создает корневую команду.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vowelstat",
		Short: "Count vowels and consonants in text or documents",
		Long: `vowelstat asks for a paragraph of text, or the word "file" followed by a path
to a pdf, docx, odt, xlsx, csv, json or plain text file (optionally gzipped).
It prints letter statistics and can export them to a PDF report.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogging(cmd.ErrOrStderr(), verbose)
		},
		RunE: runRoot,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().StringP("config", "c", "", "Path to config file (default: $XDG_CONFIG_HOME/vowelstat/config.yaml)")
	cmd.Flags().StringP("output", "o", "", "Path of the exported PDF report (default \"vowel-analysis.pdf\")")
	cmd.Flags().String("markdown", "", "Also export the report as Markdown to this path")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("pdf-engine", "", "PDF text engine: auto, unipdf or builtin")

	return cmd
}

// Execute запускает корневую команду и завершает процесс при ошибке.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// version задается при сборке через -ldflags.
var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

func setupLogging(w io.Writer, verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), shell.Config{
		OutputPath:   cfg.Output,
		MarkdownPath: cfg.Markdown,
		Color:        cfg.Color && !noColor && !color.NoColor,
		TopTokens:    cfg.Vocabulary,
		Extract:      cfg.ExtractOptions(),
	})

	// Ошибки чтения и экспорта уже показаны пользователю, код выхода 0.
	if err := sh.Run(cmd.Context()); err != nil {
		log.Debug().Err(err).Msg("session ended with error")
	}
	return nil
}

// loadConfig читает файл настроек и применяет явно заданные флаги.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("markdown") {
		cfg.Markdown, _ = flags.GetString("markdown")
	}
	if flags.Changed("pdf-engine") {
		cfg.PDF.Engine, _ = flags.GetString("pdf-engine")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("output", cfg.Output).
		Str("markdown", cfg.Markdown).
		Str("engine", cfg.PDF.Engine).
		Msg("configuration")
	return cfg, nil
}
