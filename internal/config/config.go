// Package config загружает необязательный YAML-файл настроек.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/terratensor/vowelstat/internal/analyzer"
	"github.com/terratensor/vowelstat/internal/processor"
	"github.com/terratensor/vowelstat/internal/report"
)

// AppName задает каталог настроек в XDG_CONFIG_HOME.
const AppName = "vowelstat"

// FileName задает имя файла настроек.
const FileName = "config.yaml"

// ErrInvalid оборачивает ошибки проверки настроек.
var ErrInvalid = errors.New("invalid config")

// Config содержит настройки запуска.
type Config struct {
	Output     string    `yaml:"output"`
	Markdown   string    `yaml:"markdown"`
	Color      bool      `yaml:"color"`
	Vocabulary int       `yaml:"vocabulary"`
	PDF        PDFConfig `yaml:"pdf"`
}

// PDFConfig выбирает движок извлечения текста из PDF.
type PDFConfig struct {
	Engine     string `yaml:"engine"`
	LicenseKey string `yaml:"licenseKey"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		Output:     report.DefaultPDFPath,
		Color:      true,
		Vocabulary: analyzer.DefaultTopTokens,
		PDF:        PDFConfig{Engine: processor.EngineAuto},
	}
}

// DefaultPath ищет config.yaml в каталогах XDG. Пустая строка означает, что файла нет.
func DefaultPath() string {
	path, err := xdg.SearchConfigFile(filepath.Join(AppName, FileName))
	if err != nil {
		return ""
	}
	return path
}

// Load читает настройки из path поверх значений по умолчанию.
// Пустой path означает поиск в XDG; отсутствие файла там не ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Msg("config loaded")
	return cfg, nil
}

// Validate проверяет значения настроек.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("%w: output must not be empty", ErrInvalid)
	}
	if c.Vocabulary < 0 {
		return fmt.Errorf("%w: vocabulary must be >= 0, got %d", ErrInvalid, c.Vocabulary)
	}
	switch strings.ToLower(strings.TrimSpace(c.PDF.Engine)) {
	case "", processor.EngineAuto, processor.EngineUniPDF, processor.EngineBuiltin:
	default:
		return fmt.Errorf("%w: unknown pdf engine %q", ErrInvalid, c.PDF.Engine)
	}
	return nil
}

// ExtractOptions возвращает параметры извлечения текста.
func (c *Config) ExtractOptions() processor.Options {
	return processor.Options{
		PDFEngine:  c.PDF.Engine,
		LicenseKey: c.PDF.LicenseKey,
	}
}
