package processor

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVProcessor обрабатывает CSV-файлы.
// Первая строка считается заголовком; остальные строки сериализуются в JSON-массив
// объектов с ключами из заголовка в порядке колонок.
type CSVProcessor struct{}

func NewCSVProcessor() *CSVProcessor {
	return &CSVProcessor{}
}

func (p *CSVProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	// Кавычки внутри поля без кавычек остаются текстом
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	var b bytes.Buffer
	b.WriteByte('[')
	if len(records) > 1 {
		header := records[0]
		for i, row := range records[1:] {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCSVRow(&b, header, row)
		}
	}
	b.WriteByte(']')
	return bytes.NewReader(b.Bytes()), nil
}

// writeCSVRow пишет строку как JSON-объект. Повторяющийся заголовок
// сохраняет место первого вхождения и значение последнего.
func writeCSVRow(b *bytes.Buffer, header, row []string) {
	var keys []string
	values := make(map[string]string, len(row))
	for j, cell := range row {
		// Лишние колонки без заголовка получают ключ _<индекс>
		key := "_" + strconv.Itoa(j)
		if j < len(header) {
			key = header[j]
		}
		if _, ok := values[key]; !ok {
			keys = append(keys, key)
		}
		values[key] = cell
	}

	b.WriteByte('{')
	for j, key := range keys {
		if j > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteJSON(key))
		b.WriteByte(':')
		b.WriteString(quoteJSON(values[key]))
	}
	b.WriteByte('}')
}

// quoteJSON кодирует строку без HTML-экранирования.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
