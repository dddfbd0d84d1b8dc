// Команда vowelstat считает гласные и согласные во введенном тексте
// или в документе (pdf, docx, odt, xlsx, csv, json, текст) и по запросу
// сохраняет отчет в PDF.
//
// Использование:
//
//	vowelstat [--config path] [--output report.pdf] [--markdown report.md]
package main

func main() {
	Execute()
}
