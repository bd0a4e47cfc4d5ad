package util

import "strings"

// RemoveDuplicateStrings keeps the first occurrence of every non-empty string
// not present in ignoreList, preserving order.
func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

// TrimString cuts s to at most length runes.
func TrimString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}

// NormaliseCode upper-cases and trims station codes and train numbers.
func NormaliseCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
