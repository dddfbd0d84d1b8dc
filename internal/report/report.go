// Package report выводит результат анализа в консоль и экспортирует его
// в PDF или Markdown. Все форматы используют строки, построенные New.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/text/encoding/charmap"

	"github.com/terratensor/vowelstat/internal/analyzer"
)

// Title задает заголовок отчета во всех форматах.
const Title = "Vowel Analysis Report"

// Разделы в порядке вывода.
const (
	SectionBasic      = "Basic Statistics"
	SectionFindings   = "Interesting Findings"
	SectionLetters    = "Letter Breakdown"
	SectionVocabulary = "Vocabulary"
)

// noneValue выводится вместо пустого слова.
const noneValue = "none"

// Row хранит одну отформатированную строку отчета.
type Row struct {
	Label string
	Value string
}

func (r Row) String() string {
	return r.Label + ": " + r.Value
}

// Section описывает раздел отчета.
type Section struct {
	Title string
	Rows  []Row
}

// Report строится по analyzer.Result. Значения форматируются один раз,
// форматы вывода только раскладывают их.
type Report struct {
	Title    string
	Sections []Section
}

// New строит отчет по результату анализа.
func New(res analyzer.Result) *Report {
	r := &Report{Title: Title}

	r.Sections = append(r.Sections, Section{
		Title: SectionBasic,
		Rows: []Row{
			{"Total words", strconv.Itoa(res.TotalWords)},
			{"Total vowels", strconv.Itoa(res.TotalVowels)},
			{"Total consonants", strconv.Itoa(res.TotalConsonants)},
			{"Total letters", strconv.Itoa(res.TotalChars)},
			{"Average word length", formatFloat(res.AverageWordLength)},
		},
	})

	mostVowels := noneValue
	if res.MostVowelsWord != "" {
		mostVowels = fmt.Sprintf("%s (%d %s)", res.MostVowelsWord, res.MostVowelsCount, plural(res.MostVowelsCount, "vowel", "vowels"))
	}
	r.Sections = append(r.Sections, Section{
		Title: SectionFindings,
		Rows: []Row{
			{"Longest word", orNone(res.LongestWord)},
			{"Word with most vowels", mostVowels},
			{"Vowel percentage", formatFloat(res.VowelPercentage) + "%"},
		},
	})

	// Сначала гласные, затем согласные
	letters := append(letterRows("Vowel", res.VowelFreq), letterRows("Consonant", res.ConsonantFreq)...)
	r.Sections = append(r.Sections, Section{Title: SectionLetters, Rows: letters})

	var vocab []Row
	for _, tc := range res.Vocabulary {
		if !printable(tc.Token) {
			continue
		}
		vocab = append(vocab, Row{tc.Token, strconv.Itoa(tc.Count)})
	}
	if len(vocab) > 0 {
		r.Sections = append(r.Sections, Section{Title: SectionVocabulary, Rows: vocab})
	}
	return r
}

// Present возвращает строки консольного отчета.
func Present(res analyzer.Result) []string {
	return New(res).Lines()
}

// Lines возвращает отчет построчно; разделы отделены пустой строкой.
func (r *Report) Lines() []string {
	var lines []string
	for i, sec := range r.Sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sectionHeader(sec.Title))
		if len(sec.Rows) == 0 {
			lines = append(lines, noneValue)
		}
		for _, row := range sec.Rows {
			lines = append(lines, row.String())
		}
	}
	return lines
}

// Print пишет отчет в w, при colored с цветом.
func (r *Report) Print(w io.Writer, colored bool) error {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgGreen)
	value := color.New(color.FgYellow)
	for _, c := range []*color.Color{header, label, value} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for i, sec := range r.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := header.Fprintln(w, sectionHeader(sec.Title)); err != nil {
			return err
		}
		if len(sec.Rows) == 0 {
			if _, err := fmt.Fprintln(w, noneValue); err != nil {
				return err
			}
		}
		for _, row := range sec.Rows {
			if _, err := fmt.Fprintf(w, "%s %s\n", label.Sprint(row.Label+":"), value.Sprint(row.Value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func sectionHeader(title string) string {
	return "== " + title + " =="
}

func letterRows(kind string, freq map[rune]int) []Row {
	letters := analyzer.SortedLetters(freq)
	rows := make([]Row, 0, len(letters))
	for _, lc := range letters {
		rows = append(rows, Row{kind + " " + string(lc.Letter), strconv.Itoa(lc.Count)})
	}
	return rows
}

// printable сообщает, представим ли токен в кодировке шрифтов PDF (cp1252).
// Непредставимые токены не попадают ни в один формат отчета.
func printable(token string) bool {
	_, err := charmap.Windows1252.NewEncoder().String(token)
	return err == nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func orNone(s string) string {
	if s == "" {
		return noneValue
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
