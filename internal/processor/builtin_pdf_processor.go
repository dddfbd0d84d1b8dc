package processor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// BuiltinPDFProcessor обрабатывает PDF-файлы через ledongthuc/pdf.
// Ключ лицензии не требуется.
type BuiltinPDFProcessor struct{}

func NewBuiltinPDFProcessor() *BuiltinPDFProcessor {
	return &BuiltinPDFProcessor{}
}

func (p *BuiltinPDFProcessor) Process(reader io.ReadSeeker) (out io.Reader, err error) {
	content, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	// Парсер паникует на части поврежденных файлов
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var text bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		if text.Len() > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(pageText)
	}
	return bytes.NewReader(text.Bytes()), nil
}
