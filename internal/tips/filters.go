package tips

import (
	"regexp"
	"strings"
	"unicode"
)

// Tip length window, in characters, after citation stripping. Shorter blocks
// are navigation crumbs, longer ones are essays rather than tips.
const (
	minTipLength = 50
	maxTipLength = 300
)

// maxDigitRatio rejects blocks where digits dominate: opening hours tables,
// price grids, phone directories.
const maxDigitRatio = 0.25

var (
	// Bracketed citation markers: [1], [12], [citation needed], [nota 3].
	citationPattern = regexp.MustCompile(`\[[^\[\]]{1,40}\]`)

	whitespacePattern = regexp.MustCompile(`\s+`)

	// Phone-number shapes: "(+55) 11 4002-8922", "+351 21 123 4567",
	// "tel: 555-0199".
	phonePattern = regexp.MustCompile(`\(\+?\d|\+\d{2,}|\b(?i:tel|fax|phone|telefone)\b[\s.:]*\+?\d`)

	// Business-listing shape: "Name, Street something 123, ...". Travel-wiki
	// practical sections interleave these verbatim listings with real advice.
	listingPattern = regexp.MustCompile(`^[^,\d]{3,60},\s+[^,\d]{2,60}\d{1,5}\s*(?:,|\(|$)`)

	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+|(?i:e-?mail)\s*[:\.]`)
)

// contactGlyphs are the symbols travel wikis prepend to listing fields.
var contactGlyphs = []string{"☎", "✉", "📞", "📠", "⌚", "🕿"}

// CleanText strips citation markers and collapses whitespace, returning the
// candidate text a tip would be built from.
func CleanText(s string) string {
	s = citationPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// QualifiesAsTip reports whether a cleaned text block is worth emitting:
// inside the length window and past every noise heuristic.
func QualifiesAsTip(s string) bool {
	n := len([]rune(s))
	if n < minTipLength || n > maxTipLength {
		return false
	}
	if IsDigitHeavy(s) {
		return false
	}
	if LooksLikeContactListing(s) {
		return false
	}
	if HasEmailMarker(s) {
		return false
	}
	if IsPunctuationOnly(s) {
		return false
	}
	return true
}

// IsDigitHeavy reports whether more than maxDigitRatio of the characters are
// digits.
func IsDigitHeavy(s string) bool {
	if s == "" {
		return false
	}
	total, digits := 0, 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if total == 0 {
		return false
	}
	return float64(digits)/float64(total) > maxDigitRatio
}

// LooksLikeContactListing reports whether the text resembles a business
// listing: a phone-number shape, a contact glyph, or the
// "Name, Address 123" opening.
func LooksLikeContactListing(s string) bool {
	if phonePattern.MatchString(s) {
		return true
	}
	for _, glyph := range contactGlyphs {
		if strings.Contains(s, glyph) {
			return true
		}
	}
	return listingPattern.MatchString(s)
}

// HasEmailMarker reports whether the text embeds an e-mail address or label.
func HasEmailMarker(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPunctuationOnly reports whether the text carries no letters at all, just
// digits, punctuation and symbols.
func IsPunctuationOnly(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
