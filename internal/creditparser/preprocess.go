package creditparser

import (
	"regexp"
	"strings"
)

var (
	pdfStreamPattern   = regexp.MustCompile(`(?s)\bstream\b.*?\bendstream\b`)
	pdfMarkerPattern   = regexp.MustCompile(`\b\d+ \d+ obj\b|\bendobj\b|\bxref\b|\btrailer\b|%PDF-\d\.\d|%%EOF|<<\s*/[A-Za-z]+[^>]*>>`)
	spacedCapsPattern  = regexp.MustCompile(`\b[A-Z](?: [A-Z])+\b`)
	spacedDigitPattern = regexp.MustCompile(`\b\d(?: \d)+\b`)
	wideSpacePattern   = regexp.MustCompile(`[ \t\f\v]{3,}`)
	blankRunPattern    = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

var punctuationReplacer = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u201A", "'",
	"\u201C", `"`,
	"\u201D", `"`,
	"\u201E", `"`,
	"\u2013", "-",
	"\u2014", "-",
	"\u2212", "-",
	"\u00A0", " ",
)

// Preprocess normalizes raw OCR text. It never fails; garbage in yields a
// possibly empty string out.
func Preprocess(raw string) string {
	text := pdfStreamPattern.ReplaceAllString(raw, " ")
	text = pdfMarkerPattern.ReplaceAllString(text, " ")

	text = spacedCapsPattern.ReplaceAllStringFunc(text, removeSpaces)
	text = spacedDigitPattern.ReplaceAllStringFunc(text, removeSpaces)

	text = wideSpacePattern.ReplaceAllString(text, " ")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	text = punctuationReplacer.Replace(text)
	return strings.TrimSpace(text)
}

func removeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
