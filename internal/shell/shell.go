// Package shell ведет один интерактивный запуск: запрос ввода, извлечение
// текста, анализ, вывод отчета и экспорт по согласию пользователя.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/terratensor/vowelstat/internal/analyzer"
	"github.com/terratensor/vowelstat/internal/processor"
	"github.com/terratensor/vowelstat/internal/report"
)

const (
	PromptInput  = `Enter a paragraph or text (or type "file" to read from a file): `
	PromptPath   = "Enter the file path: "
	PromptExport = "Export the report to PDF? (y/n): "

	fileKeyword = "file"
)

// Config задает параметры запуска.
type Config struct {
	OutputPath   string
	MarkdownPath string
	Color        bool
	TopTokens    int
	Extract      processor.Options
}

// Shell связывает ввод-вывод одного запуска с конвейером анализа.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	cfg      Config
	analyzer *analyzer.Analyzer
	prompt   *color.Color
	alert    *color.Color
}

func New(in io.Reader, out, errOut io.Writer, cfg Config) *Shell {
	if cfg.OutputPath == "" {
		cfg.OutputPath = report.DefaultPDFPath
	}
	s := &Shell{
		in:       bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		cfg:      cfg,
		analyzer: analyzer.New(cfg.TopTokens),
		prompt:   color.New(color.FgCyan),
		alert:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{s.prompt, s.alert} {
		if cfg.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Run выполняет один проход: ввод → извлечение → анализ → отчет → экспорт.
// Ошибки извлечения и экспорта печатаются в errOut и возвращаются.
// Конец ввода на первом вопросе завершает запуск без ошибки.
func (s *Shell) Run(ctx context.Context) error {
	input, err := s.ask(ctx, PromptInput)
	if errors.Is(err, io.EOF) {
		log.Debug().Msg("no input")
		return nil
	}
	if err != nil {
		return err
	}

	src := processor.TextSource(input)
	if strings.EqualFold(strings.TrimSpace(input), fileKeyword) {
		path, err := s.ask(ctx, PromptPath)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		src = processor.FileSource(strings.TrimSpace(path))
	}

	text, err := processor.Extract(ctx, src, s.cfg.Extract)
	if err != nil {
		s.fail("Error reading file:", err)
		return err
	}

	res := s.analyzer.Analyze(text)
	log.Debug().Int("words", res.TotalWords).Int("letters", res.TotalChars).Msg("text analyzed")

	rep := report.New(res)
	if err := rep.Print(s.out, s.cfg.Color); err != nil {
		return err
	}

	answer, err := s.ask(ctx, PromptExport)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !isYes(answer) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := report.ExportPDF(rep, s.cfg.OutputPath); err != nil {
		s.fail("Error exporting report:", err)
		return err
	}
	fmt.Fprintf(s.out, "PDF report saved to %s\n", s.cfg.OutputPath)

	if s.cfg.MarkdownPath != "" {
		if err := report.ExportMarkdown(rep, s.cfg.MarkdownPath); err != nil {
			s.fail("Error exporting report:", err)
			return err
		}
		fmt.Fprintf(s.out, "Markdown report saved to %s\n", s.cfg.MarkdownPath)
	}
	return nil
}

type readResult struct {
	line string
	err  error
}

// ask печатает вопрос и читает одну строку без перевода строки.
// Последняя строка без '\n' тоже считается ответом.
// Отмена ctx прерывает ожидание ввода.
func (s *Shell) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.prompt.Fprint(s.out, question)

	done := make(chan readResult, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", ctx.Err()
	case res = <-done:
	}

	if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
		fmt.Fprintln(s.out)
		return "", res.err
	}
	return strings.TrimRight(res.line, "\r\n"), nil
}

func (s *Shell) fail(msg string, err error) {
	s.alert.Fprintln(s.errOut, msg, causeOf(err))
	log.Debug().Err(err).Msg(msg)
}

// causeOf снимает обертки ошибок извлечения и экспорта для пользователя.
func causeOf(err error) error {
	var extractErr *processor.ExtractionError
	if errors.As(err, &extractErr) {
		return extractErr.Err
	}
	var exportErr *report.ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Err
	}
	return err
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
