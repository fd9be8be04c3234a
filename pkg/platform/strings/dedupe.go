// Package strings holds small slice helpers shared by handlers and the CLI.
package strings

import (
	"strings"
)

// Dedupe returns values without repeats, keeping first-seen order. The input
// is not modified.
func Dedupe[T comparable](values []T) []T {
	if values == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// DedupeAndTrim trims each element, drops empty ones and removes repeats.
//
//	DedupeAndTrim([]string{"  Speech ", "NewsArticle", "Speech", ""})
//	// []string{"Speech", "NewsArticle"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return Dedupe(trimmed)
}

// SplitList splits a comma separated flag value into clean, unique items.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(s, ","))
}
