package domain

import "time"

// DocumentType is the classification assigned to the OCR text of an
// uploaded document
type DocumentType string

const (
	DocumentTypeExame         DocumentType = "exame"
	DocumentTypeLaudo         DocumentType = "laudo"
	DocumentTypeLaudoComExame DocumentType = "laudo_com_exame"
	DocumentTypeDesconhecido  DocumentType = "desconhecido"
)

// IsReport returns true for the document types accepted by the approval
// rules (a report, with or without an attached exam)
func (t DocumentType) IsReport() bool {
	return t == DocumentTypeLaudo || t == DocumentTypeLaudoComExame
}

// RegistryStatus is the validity status of a professional registry
type RegistryStatus string

const (
	RegistryStatusActive  RegistryStatus = "ativo"
	RegistryStatusUnknown RegistryStatus = "desconhecido"
)

// RegistryRecord is a professional registry identifier found in the text.
// Label is "<TYPE>/<STATE> <NUMBER>"; the state segment is empty when the
// document omits it, leaving a dangling slash ("CRM/ 123456").
type RegistryRecord struct {
	Type   string         `json:"type"`
	State  string         `json:"state,omitempty"`
	Number string         `json:"number"`
	Label  string         `json:"label"`
	Status RegistryStatus `json:"status"`
}

// AnalysisResult aggregates the five extractions for one document.
// Built exactly once per analysis request and immutable afterwards.
type AnalysisResult struct {
	AnalysisID    string          `json:"analysis_id"`
	DocumentType  DocumentType    `json:"document_type"`
	DiagnosisCode *string         `json:"diagnosis_code,omitempty"`
	Registry      *RegistryRecord `json:"registry,omitempty"`
	Absence       bool            `json:"absence"`
	Signature     bool            `json:"signature"`
	RawText       string          `json:"raw_text"`
	OCRLanguage   string          `json:"ocr_language"`
	DurationMs    int64           `json:"duration_ms"`
	AnalyzedAt    time.Time       `json:"analyzed_at"`
}

// Checklist criterion identifiers
const (
	CriterionDocumentType  = "document_type"
	CriterionDiagnosisCode = "diagnosis_code"
	CriterionRegistry      = "registry"
	CriterionAbsence       = "absence"
	CriterionSignature     = "signature"
)

// ChecklistItem is one criterion of the approval checklist
type ChecklistItem struct {
	Criterion string `json:"criterion"`
	Label     string `json:"label"`
	Passed    bool   `json:"passed"`
	Display   string `json:"display"`
}

// ApprovalVerdict is the overall decision plus the per-criterion breakdown.
// Derived from an AnalysisResult on demand, never persisted.
type ApprovalVerdict struct {
	Approved  bool            `json:"approved"`
	Message   string          `json:"message"`
	Checklist []ChecklistItem `json:"checklist"`
}

// FailedCriteria returns how many checklist items did not pass
func (v *ApprovalVerdict) FailedCriteria() int {
	failed := 0
	for _, item := range v.Checklist {
		if !item.Passed {
			failed++
		}
	}
	return failed
}
