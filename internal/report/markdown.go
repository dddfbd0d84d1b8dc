package report

import (
	"io"

	"github.com/nao1215/markdown"
)

// ExportMarkdown сохраняет отчет в Markdown по пути path.
func ExportMarkdown(r *Report, path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return renderMarkdown(r, w)
	})
}

// renderMarkdown выводит заголовок и по таблице на раздел.
func renderMarkdown(r *Report, w io.Writer) error {
	md := markdown.NewMarkdown(w)
	md.H1(r.Title)
	md.PlainText("")

	for _, sec := range r.Sections {
		md.H2(sec.Title)
		md.PlainText("")
		if len(sec.Rows) == 0 {
			md.PlainText(noneValue)
			md.PlainText("")
			continue
		}

		rows := make([][]string, 0, len(sec.Rows))
		for _, row := range sec.Rows {
			rows = append(rows, []string{row.Label, row.Value})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}
	return md.Build()
}
