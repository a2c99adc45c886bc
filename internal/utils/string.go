package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// CapitalPositions records which runes of s are upper case.
// It returns nil when s has no capitals.
func CapitalPositions(s string) []bool {
	var positions []bool
	i := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			if positions == nil {
				positions = make([]bool, len([]rune(s)))
			}
			positions[i] = true
		}
		i++
	}
	return positions
}

// ApplyCapitalization upper-cases the runes of word flagged in positions.
func ApplyCapitalization(word string, positions []bool) string {
	if len(positions) == 0 {
		return word
	}
	runes := []rune(word)
	for i := 0; i < len(runes) && i < len(positions); i++ {
		if positions[i] {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}

// FormatWithCommas renders n with thousands separators.
func FormatWithCommas(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var sb strings.Builder
	sb.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
