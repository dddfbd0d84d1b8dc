package processor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	odtContentPath = "content.xml"
	odtTextNS      = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// ODTProcessor обрабатывает документы OpenDocument Text.
type ODTProcessor struct{}

func NewODTProcessor() *ODTProcessor {
	return &ODTProcessor{}
}

func (p *ODTProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	content, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open ODT: not a zip: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != odtContentPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open ODT %s: %w", f.Name, err)
		}
		defer rc.Close()

		text, err := odfText(rc)
		if err != nil {
			return nil, fmt.Errorf("parse ODT: %w", err)
		}
		return strings.NewReader(text), nil
	}
	return nil, fmt.Errorf("open ODT: %s not found", odtContentPath)
}

// odfText собирает текст абзацев и заголовков (text:p, text:h).
func odfText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	depth := 0
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
			if t.Name.Space != odtTextNS {
				continue
			}
			switch t.Name.Local {
			case "p", "h":
				depth++
			case "s":
				b.WriteString(strings.Repeat(" ", spaceCount(t)))
			case "tab":
				b.WriteByte('\t')
			case "line-break":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space == odtTextNS && (t.Name.Local == "p" || t.Name.Local == "h") {
				depth--
				if depth == 0 {
					b.WriteByte('\n')
				}
			}
		case xml.CharData:
			if depth > 0 {
				b.Write(t)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// spaceCount читает text:c у элемента text:s.
func spaceCount(el xml.StartElement) int {
	for _, attr := range el.Attr {
		if attr.Name.Local != "c" {
			continue
		}
		if n, err := strconv.Atoi(attr.Value); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
