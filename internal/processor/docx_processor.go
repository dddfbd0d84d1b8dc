package processor

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCXProcessor обрабатывает DOCX-файлы.
type DOCXProcessor struct{}

func NewDOCXProcessor() *DOCXProcessor {
	return &DOCXProcessor{}
}

func (p *DOCXProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	content, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	// Чтение DOCX
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open DOCX: %w", err)
	}
	defer doc.Close()

	// GetContent отдает XML основного документа, разметку убираем
	text, err := wordMLText(doc.Editable().GetContent())
	if err != nil {
		return nil, fmt.Errorf("parse DOCX: %w", err)
	}
	return strings.NewReader(text), nil
}

// wordMLText собирает текст из w:t; w:p завершает строку.
func wordMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		b     strings.Builder
		stack []string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, t.Name.Local)
			// w:tab внутри w:tabs задает позиции табуляции, а не символ
			if parent != "r" {
				continue
			}
			switch t.Name.Local {
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Local == "p" {
				b.WriteByte('\n')
			}
		case xml.CharData:
			if len(stack) > 0 && stack[len(stack)-1] == "t" {
				b.Write(t)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
