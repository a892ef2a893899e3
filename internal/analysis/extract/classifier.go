package extract

import (
	"strings"

	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
)

// Keyword vocabularies for document classification. The service targets
// Brazilian medical documents, so the vocabulary is Portuguese.
var (
	examKeywords = []string{
		"exame",
		"resultado de",
		"hemograma",
		"ressonância magnética",
		"raio-x",
		"tomografia",
	}

	reportKeywords = []string{
		"laudo",
		"atestado",
		"relatório médico",
		"declaração",
	}
)

// Classifier labels raw OCR text as exam, report, report-with-exam or
// unknown based on keyword presence.
type Classifier struct{}

// NewClassifier creates a new document classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the document type for the given text. Precedence:
// both keyword sets present wins over exam alone, which wins over report
// alone. Total: always returns a value.
func (c *Classifier) Classify(text string) domain.DocumentType {
	lower := strings.ToLower(text)

	hasExam := containsAny(lower, examKeywords)
	hasReport := containsAny(lower, reportKeywords)

	switch {
	case hasExam && hasReport:
		return domain.DocumentTypeLaudoComExame
	case hasExam:
		return domain.DocumentTypeExame
	case hasReport:
		return domain.DocumentTypeLaudo
	default:
		return domain.DocumentTypeDesconhecido
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
