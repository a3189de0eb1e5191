package boleto

import "regexp"

// The three textual layouts a linha digitável shows up in. PDF text layers
// keep the printed grouping; OCR output often collapses it.
var (
	// 34191.79001 01043.510047 91020.150008 1 84410000017200
	patternDotted = regexp.MustCompile(`(\d{5}\.\d{5})\s+(\d{5}\.\d{6})\s+(\d{5}\.\d{6})\s+(\d)\s+(\d{14})`)
	// 3419179001 01043510047 91020150008 1 84410000017200
	patternSpaced = regexp.MustCompile(`(\d{10})\s+(\d{11})\s+(\d{11})\s+(\d)\s+(\d{14})`)
	// 47 consecutive digits
	patternBare = regexp.MustCompile(`\d{47}`)

	nonDigits = regexp.MustCompile(`\D`)
)

// FindCandidates scans free text for linha digitável candidates in all three
// layouts, strips separators and returns the unique 47-digit strings in
// order of first appearance. Matches that do not strip to exactly 47 digits
// are discarded silently.
func FindCandidates(text string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, pattern := range []*regexp.Regexp{patternDotted, patternSpaced, patternBare} {
		for _, match := range pattern.FindAllString(text, -1) {
			digits := nonDigits.ReplaceAllString(match, "")
			if len(digits) != LineLength || seen[digits] {
				continue
			}
			seen[digits] = true
			out = append(out, digits)
		}
	}

	return out
}
