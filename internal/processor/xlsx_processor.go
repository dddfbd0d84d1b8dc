package processor

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXProcessor обрабатывает книги Excel: все листы, ячейки через табуляцию.
type XLSXProcessor struct{}

func NewXLSXProcessor() *XLSXProcessor {
	return &XLSXProcessor{}
}

func (p *XLSXProcessor) Process(reader io.ReadSeeker) (io.Reader, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
	}
	return strings.NewReader(strings.Join(lines, "\n")), nil
}
