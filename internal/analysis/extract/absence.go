package extract

import "regexp"

// Absence vocabulary: leave, rest, suspension of activities, inability to
// attend, self-removal. Each phrase must match at word boundaries so that
// substrings inside longer words do not count.
var absencePatterns = compileBounded([]string{
	"afastamento",
	"repouso",
	"suspensão de suas atividades",
	"impossibilitado de comparecer",
	"afastar-se",
})

// AbsenceDetector detects absence/leave language in OCR text
type AbsenceDetector struct{}

// NewAbsenceDetector creates a new absence detector
func NewAbsenceDetector() *AbsenceDetector {
	return &AbsenceDetector{}
}

// Detect reports whether any absence phrase occurs as a whole word/phrase
func (d *AbsenceDetector) Detect(text string) bool {
	for _, p := range absencePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func compileBounded(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	}
	return patterns
}
