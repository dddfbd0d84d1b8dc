package processor

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

var (
	licenseOnce sync.Once
	licenseErr  error
)

// applyLicense регистрирует ключ unidoc один раз на процесс.
func applyLicense(key string) error {
	if key == "" {
		return nil
	}
	licenseOnce.Do(func() {
		licenseErr = license.SetMeteredKey(key)
	})
	return licenseErr
}

// newPDFProcessor выбирает движок PDF согласно настройкам.
func newPDFProcessor(opts Options) (FileProcessor, error) {
	engine := opts.pdfEngine()
	log.Debug().Str("engine", engine).Msg("pdf engine selected")

	switch engine {
	case EngineUniPDF:
		if err := applyLicense(opts.LicenseKey); err != nil {
			return nil, fmt.Errorf("unidoc license: %w", err)
		}
		return NewPDFProcessor(), nil
	case EngineBuiltin:
		return NewBuiltinPDFProcessor(), nil
	default:
		return nil, fmt.Errorf("%w pdf engine %q", ErrUnsupported, engine)
	}
}

// PDFProcessor обрабатывает PDF-файлы через unipdf.
type PDFProcessor struct{}

func NewPDFProcessor() *PDFProcessor {
	return &PDFProcessor{}
}

func (p *PDFProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	// Чтение PDF
	pdfReader, err := model.NewPdfReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}

	var text bytes.Buffer
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}

		ex, err := extractor.New(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}

		pageText, err := ex.ExtractText()
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}

		if i > 1 {
			text.WriteByte('\n')
		}
		text.WriteString(pageText)
	}

	// Возвращаем содержимое как io.Reader
	return bytes.NewReader(text.Bytes()), nil
}
