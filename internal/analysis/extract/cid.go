package extract

import (
	"regexp"
	"strings"
)

// cidPattern matches a CID marker ("CID", "CID-10", "CID10") followed by
// an optional separator and a clinical code: one letter, 1-2 digits and
// an optional ".XX" suffix.
var cidPattern = regexp.MustCompile(`(?i)cid[-\s]?10?\s*[:\-\s]?\s*([a-zA-Z]\d{1,2}(\.\d{1,2})?)`)

// CIDExtractor extracts a CID-style diagnosis code from OCR text
type CIDExtractor struct{}

// NewCIDExtractor creates a new diagnosis code extractor
func NewCIDExtractor() *CIDExtractor {
	return &CIDExtractor{}
}

// Extract returns the first diagnosis code in the text, upper-cased, and
// whether one was found. Later occurrences are ignored.
func (e *CIDExtractor) Extract(text string) (string, bool) {
	m := cidPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}
