package processor

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextProcessor обрабатывает текстовые файлы.
// По умолчанию UTF-8; по BOM определяется UTF-8 или UTF-16 LE/BE.
// Некорректные байты заменяются на U+FFFD.
type TextProcessor struct{}

func NewTextProcessor() *TextProcessor {
	return &TextProcessor{}
}

func (p *TextProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(reader, decoder), nil
}
