package puzzle

import (
	"sort"
	"strings"
	"unicode"
)

var (
	latinAlphabet    = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	cyrillicAlphabet = []rune("АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ")
)

// Normalize upper-cases a word and strips surrounding whitespace.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// IsWord reports whether s is non-empty and made only of letters.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// AlphabetFor returns the filler alphabet for a word list.
// Latin banks get A-Z, Cyrillic banks get the Russian alphabet,
// anything else falls back to the distinct letters of the words.
func AlphabetFor(words []string) []rune {
	seen := make(map[rune]bool)
	for _, w := range words {
		for _, r := range Normalize(w) {
			if unicode.IsLetter(r) {
				seen[r] = true
			}
		}
	}
	if len(seen) == 0 {
		return latinAlphabet
	}
	if subsetOf(seen, latinAlphabet) {
		return latinAlphabet
	}
	if subsetOf(seen, cyrillicAlphabet) {
		return cyrillicAlphabet
	}

	letters := make([]rune, 0, len(seen))
	for r := range seen {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

func subsetOf(set map[rune]bool, alphabet []rune) bool {
	in := make(map[rune]bool, len(alphabet))
	for _, r := range alphabet {
		in[r] = true
	}
	for r := range set {
		if !in[r] {
			return false
		}
	}
	return true
}
