package processor

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// SourceKind различает введенный текст и путь к файлу.
type SourceKind int

const (
	SourceText SourceKind = iota
	SourceFile
)

// Source описывает входные данные одного запуска.
type Source struct {
	Kind SourceKind
	Text string
	Path string
}

// TextSource оборачивает текст, введенный пользователем.
func TextSource(text string) Source {
	return Source{Kind: SourceText, Text: text}
}

// FileSource указывает на файл, формат определяется по расширению.
func FileSource(path string) Source {
	return Source{Kind: SourceFile, Path: path}
}

// Extract возвращает плоский текст источника.
// Ошибки чтения и декодирования файла возвращаются как *ExtractionError.
func Extract(ctx context.Context, src Source, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if src.Kind == SourceText {
		return src.Text, nil
	}

	format := FormatOf(src.Path)
	text, err := extractFile(src.Path, opts)
	if err != nil {
		return "", &ExtractionError{Path: src.Path, Format: format, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	log.Debug().Str("path", src.Path).Str("format", format).Int("bytes", len(text)).Msg("text extracted")
	return text, nil
}

func extractFile(path string, opts Options) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Выбор процессора
	p, err := NewProcessor(path, opts)
	if err != nil {
		return "", err
	}

	contentReader, err := p.Process(file)
	if err != nil {
		return "", err
	}

	content, err := io.ReadAll(contentReader)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
