// Package analyzer считает частоты гласных и согласных и находит
// характерные слова текста.
package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultTopTokens задает размер словаря частых токенов по умолчанию.
const DefaultTopTokens = 10

const vowels = "aeiou"

// wordPattern находит слова: максимальные последовательности [A-Za-z0-9_].
var wordPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// LetterCount хранит букву и число ее вхождений.
type LetterCount struct {
	Letter rune
	Count  int
}

// Result содержит итог анализа одного текста.
// TotalVowels и TotalConsonants равны суммам соответствующих частот,
// их сумма равна TotalChars.
type Result struct {
	CleanText     string
	VowelFreq     map[rune]int
	ConsonantFreq map[rune]int

	TotalVowels     int
	TotalConsonants int
	TotalChars      int
	TotalWords      int

	AverageWordLength float64
	VowelPercentage   float64

	// Пустая строка, если слов нет.
	LongestWord     string
	MostVowelsWord  string
	MostVowelsCount int

	Vocabulary []TokenCount
}

// Analyzer анализирует текст; topTokens ограничивает словарь (0 отключает словарь).
type Analyzer struct {
	topTokens int
}

func New(topTokens int) *Analyzer {
	if topTokens < 0 {
		topTokens = 0
	}
	return &Analyzer{topTokens: topTokens}
}

// Analyze анализирует текст с настройками по умолчанию.
func Analyze(text string) Result {
	return New(DefaultTopTokens).Analyze(text)
}

// Analyze никогда не возвращает ошибку: все, кроме латинских букв, отбрасывается.
func (a *Analyzer) Analyze(text string) Result {
	clean := Clean(text)
	res := Result{
		CleanText:     clean,
		VowelFreq:     make(map[rune]int),
		ConsonantFreq: make(map[rune]int),
		TotalChars:    len(clean),
	}

	for _, r := range clean {
		if IsVowel(r) {
			res.VowelFreq[r]++
			res.TotalVowels++
		} else {
			res.ConsonantFreq[r]++
			res.TotalConsonants++
		}
	}

	words := Words(text)
	res.TotalWords = len(words)
	if len(words) > 0 {
		res.LongestWord = words[0]
		res.MostVowelsWord = words[0]
		res.MostVowelsCount = countVowels(words[0])
		for _, w := range words[1:] {
			if len(w) > len(res.LongestWord) {
				res.LongestWord = w
			}
			if n := countVowels(w); n > res.MostVowelsCount {
				res.MostVowelsWord = w
				res.MostVowelsCount = n
			}
		}
		res.AverageWordLength = float64(res.TotalChars) / float64(res.TotalWords)
	}
	if res.TotalChars > 0 {
		res.VowelPercentage = float64(res.TotalVowels) / float64(res.TotalChars) * 100
	}

	if a.topTokens > 0 {
		res.Vocabulary = vocabulary(text, a.topTokens)
	}
	return res
}

// Clean возвращает копию текста в нижнем регистре только из букв a-z.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if 'a' <= c && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Words разбивает исходный текст на слова.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// IsVowel сообщает, входит ли буква в {a, e, i, o, u}.
func IsVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

func countVowels(word string) int {
	n := 0
	for i := 0; i < len(word); i++ {
		c := word[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if strings.IndexByte(vowels, c) >= 0 {
			n++
		}
	}
	return n
}

// SortedLetters возвращает ненулевые частоты в алфавитном порядке.
func SortedLetters(freq map[rune]int) []LetterCount {
	letters := make([]LetterCount, 0, len(freq))
	for r, n := range freq {
		if n > 0 {
			letters = append(letters, LetterCount{Letter: r, Count: n})
		}
	}
	sort.Slice(letters, func(i, j int) bool {
		return letters[i].Letter < letters[j].Letter
	})
	return letters
}
