package utils

import (
	"strings"
	"unicode"
)

// CountWords counts words in lightly-marked-up text. Markup punctuation is
// stripped before splitting so the count matches what a reader would see,
// and every caller (plan summaries, read-time estimates) goes through this
// one function.
func CountWords(text string) int {
	cleaned := StripMarkup(text)

	count := 0
	for _, token := range strings.FieldsFunc(cleaned, unicode.IsSpace) {
		if strings.TrimSpace(token) != "" {
			count++
		}
	}
	return count
}

// EstimateReadMinutes converts a word count into whole minutes of reading
// time at a fixed pace, never returning less than one minute for non-empty
// text.
func EstimateReadMinutes(wordCount int) int {
	const wordsPerMinute = 200
	if wordCount <= 0 {
		return 0
	}
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// StripMarkup removes lightweight markdown-style punctuation so only
// readable words remain.
func StripMarkup(text string) string {
	out := stripFencedBlocks(text)

	replacer := strings.NewReplacer(
		"`", "",
		"**", "",
		"__", "",
		"~~", "",
		"*", "",
		"_", "",
		"#", "",
		">", "",
	)
	out = replacer.Replace(out)

	lines := strings.Split(out, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if len(line) > 2 && unicode.IsDigit(rune(line[0])) && line[1] == '.' {
			line = strings.TrimSpace(line[2:])
		}
		if line == "---" || line == "***" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, " ")
}

func stripFencedBlocks(text string) string {
	for {
		start := strings.Index(text, "```")
		if start == -1 {
			return text
		}
		end := strings.Index(text[start+3:], "```")
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+3+end+3:]
	}
}
