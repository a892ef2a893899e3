package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/internal/analysis/registry"
)

// registryPattern matches a professional council token as a standalone
// word, an optional two-letter state code and a numeric id, separated by
// whitespace or slashes ("CRM/SP 123456", "crefito 98765").
var registryPattern = regexp.MustCompile(`(?i)\b(CRM|CRP|CREFITO|CRO|COREN)\b[\s/]*([A-Z]{2})?[\s/]*(\d+)`)

// RegistryExtractor extracts a professional registry identifier and
// resolves its status through the injected checker.
type RegistryExtractor struct {
	checker registry.StatusChecker
}

// NewRegistryExtractor creates a new registry extractor
func NewRegistryExtractor(checker registry.StatusChecker) *RegistryExtractor {
	return &RegistryExtractor{checker: checker}
}

// Extract returns the first registry identifier in the text and whether
// one was found. The label keeps its slash even when the state code is
// absent ("CRM/ 123456"); callers must tolerate the dangling separator.
func (e *RegistryExtractor) Extract(text string) (*domain.RegistryRecord, bool) {
	m := registryPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	rec := domain.RegistryRecord{
		Type:   strings.ToUpper(m[1]),
		State:  strings.ToUpper(m[2]),
		Number: m[3],
	}
	rec.Label = fmt.Sprintf("%s/%s %s", rec.Type, rec.State, rec.Number)
	rec.Status = e.checker.Check(rec)

	return &rec, true
}
