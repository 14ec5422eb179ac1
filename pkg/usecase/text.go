package usecase

import "unicode/utf8"

// truncateRunes cuts s to at most n runes without splitting a character
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
