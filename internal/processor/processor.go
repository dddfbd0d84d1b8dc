package processor

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FileProcessor определяет интерфейс для извлечения текста из файлов.
type FileProcessor interface {
	// Process возвращает io.Reader с плоским текстом содержимого файла.
	Process(reader io.ReadSeeker) (io.Reader, error)
}

// Движки извлечения текста из PDF.
const (
	EngineAuto    = "auto"
	EngineUniPDF  = "unipdf"
	EngineBuiltin = "builtin"
)

// Options настраивает выбор процессоров.
type Options struct {
	// PDFEngine: auto, unipdf или builtin. Пустая строка означает auto.
	PDFEngine string
	// LicenseKey задает ключ unidoc для движка unipdf.
	LicenseKey string
}

// pdfEngine разрешает auto в конкретный движок.
func (o Options) pdfEngine() string {
	engine := strings.ToLower(strings.TrimSpace(o.PDFEngine))
	if engine == "" || engine == EngineAuto {
		if o.LicenseKey != "" {
			return EngineUniPDF
		}
		return EngineBuiltin
	}
	return engine
}

// NewProcessor создает процессор на основе расширения файла.
func NewProcessor(filePath string, opts Options) (FileProcessor, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	baseName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	// Если файл в архиве .gz
	if ext == ".gz" {
		innerExt := strings.ToLower(filepath.Ext(baseName))
		innerProcessor, err := newInnerProcessor(innerExt, opts)
		if err != nil {
			return nil, fmt.Errorf("inner file format %s: %w", innerExt, err)
		}
		return NewGzipProcessor(innerProcessor), nil
	}

	// Обычные файлы
	return newInnerProcessor(ext, opts)
}

// newInnerProcessor создает процессор для файлов без учета .gz.
// Все, что не распознано, читается как текст.
func newInnerProcessor(ext string, opts Options) (FileProcessor, error) {
	switch ext {
	case ".pdf":
		return newPDFProcessor(opts)
	case ".docx":
		return NewDOCXProcessor(), nil
	case ".odt":
		return NewODTProcessor(), nil
	case ".csv":
		return NewCSVProcessor(), nil
	case ".json":
		return NewJSONProcessor(), nil
	case ".xlsx":
		return NewXLSXProcessor(), nil
	default:
		return NewTextProcessor(), nil
	}
}

// FormatOf возвращает имя формата файла для сообщений об ошибках.
func FormatOf(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".gz" {
		return FormatOf(strings.TrimSuffix(filePath, filepath.Ext(filePath))) + "+gzip"
	}
	switch ext {
	case ".pdf", ".docx", ".odt", ".csv", ".json", ".xlsx":
		return strings.TrimPrefix(ext, ".")
	default:
		return "text"
	}
}

// readAll читает содержимое целиком: большинству декодеров нужен io.ReaderAt и размер.
func readAll(reader io.ReadSeeker) ([]byte, error) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
