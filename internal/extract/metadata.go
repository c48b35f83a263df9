package extract

import (
	"regexp"
	"strings"
	"time"
)

const dateLayout = "02/01/2006"

// Document dates older than this year are treated as clinical history
// references rather than the document's own date.
const minDocumentYear = 2001

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	dateRe       = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	authorRe     = regexp.MustCompile(`\b(dr)\s+([a-z]+(?:\s+[a-z]+)?)\b`)
)

// Metadata scans document text for a document date and an author. Either
// result is empty when nothing qualifies; both scans run independently on
// the same normalized text.
func Metadata(text string) (date string, author string) {
	if text == "" {
		return "", ""
	}

	normalized := normalize(text)
	return scanDate(normalized), scanAuthor(normalized)
}

// normalize trims, collapses whitespace runs to single spaces and
// lowercases the text.
func normalize(text string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " "))
}

// scanDate returns the first DD/MM/YYYY occurrence, in text order, whose
// year qualifies. Matches that do not parse as real dates are skipped.
func scanDate(text string) string {
	for _, m := range dateRe.FindAllString(text, -1) {
		parsed, err := time.Parse(dateLayout, m)
		if err != nil {
			continue
		}
		if parsed.Year() >= minDocumentYear {
			return parsed.Format(dateLayout)
		}
	}
	return ""
}

// scanAuthor returns the last "dr <one or two words>" occurrence, with a
// literal trailing "dr" fragment cut from the name and every word
// capitalized.
func scanAuthor(text string) string {
	matches := authorRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}

	last := matches[len(matches)-1]
	prefix, name := last[1], last[2]
	if i := strings.Index(name, "dr"); i >= 0 {
		name = name[:i]
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return capitalize(prefix) + " " + strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
