package extract

import "regexp"

// signaturePattern matches a labeled signature line: a word starting with
// the "ass" stem followed immediately by a colon ("Assinatura:", "Ass:").
var signaturePattern = regexp.MustCompile(`(?i)ass\w*:`)

// SignatureDetector detects a signature marker in OCR text
type SignatureDetector struct{}

// NewSignatureDetector creates a new signature detector
func NewSignatureDetector() *SignatureDetector {
	return &SignatureDetector{}
}

// Detect reports whether the text contains a labeled signature line
func (d *SignatureDetector) Detect(text string) bool {
	return signaturePattern.MatchString(text)
}
