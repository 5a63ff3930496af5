package util

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// wordBoundaryRe splits camel case words: "UserProfile" -> "User Profile".
	wordBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	identifierRe   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// splitWords splits s into words on case changes and non alphanumeric runes.
func splitWords(s string) []string {
	s = wordBoundaryRe.ReplaceAllString(s, "$1 $2")
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SnakeCase converts "UserProfile" or "user-profile" to "user_profile".
func SnakeCase(s string) string {
	words := splitWords(s)
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, "_")
}

// PascalCase converts "user_profile" to "UserProfile".
func PascalCase(s string) string {
	var builder strings.Builder
	for _, word := range splitWords(s) {
		runes := []rune(word)
		builder.WriteRune(unicode.ToUpper(runes[0]))
		builder.WriteString(string(runes[1:]))
	}
	return builder.String()
}

// IsIdentifier checks s is a valid ASCII identifier.
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}
