package analyzer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/terratensor/segment"
)

// TokenCount хранит токен словаря и его частота.
type TokenCount struct {
	Token string
	Count int
}

// vocabulary строит словарь самых частых токенов текста.
// Токены приводятся к нижнему регистру, пунктуация и пробелы отбрасываются.
func vocabulary(text string, limit int) []TokenCount {
	vocab := make(map[string]int)

	// Построчная токенизация
	tokenizer := segment.NewTokenizer()
	for _, line := range strings.Split(text, "\n") {
		for _, token := range tokenizer.Tokenize(line) {
			tokenText := strings.ToLower(strings.TrimSpace(token.Text))
			if tokenText == "" || isPunctuation(tokenText) {
				continue
			}
			vocab[tokenText]++
		}
	}

	tokenFrequencies := make([]TokenCount, 0, len(vocab))
	for token, count := range vocab {
		tokenFrequencies = append(tokenFrequencies, TokenCount{Token: token, Count: count})
	}

	// По частоте, при равенстве по алфавиту
	sort.Slice(tokenFrequencies, func(i, j int) bool {
		if tokenFrequencies[i].Count != tokenFrequencies[j].Count {
			return tokenFrequencies[i].Count > tokenFrequencies[j].Count
		}
		return tokenFrequencies[i].Token < tokenFrequencies[j].Token
	})

	if len(tokenFrequencies) > limit {
		tokenFrequencies = tokenFrequencies[:limit]
	}
	return tokenFrequencies
}

func isPunctuation(token string) bool {
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
