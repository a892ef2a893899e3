package approval

import (
	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/pkg/i18n"
)

// Evaluate projects an analysis result into an approval verdict. All five
// criteria must hold: accepted document type, diagnosis code present,
// active professional registry, absence indication and signature. Pure
// function of the result; repeated calls yield identical verdicts.
func Evaluate(result *domain.AnalysisResult, loc *i18n.Localizer) *domain.ApprovalVerdict {
	typeOK := result.DocumentType.IsReport()
	codeOK := result.DiagnosisCode != nil
	registryOK := result.Registry != nil && result.Registry.Status == domain.RegistryStatusActive

	checklist := []domain.ChecklistItem{
		{
			Criterion: domain.CriterionDocumentType,
			Label:     loc.T("checklist.document_type"),
			Passed:    typeOK,
			Display:   loc.T("doc_type." + string(result.DocumentType)),
		},
		{
			Criterion: domain.CriterionDiagnosisCode,
			Label:     loc.T("checklist.diagnosis_code"),
			Passed:    codeOK,
			Display:   codeDisplay(result, loc),
		},
		{
			Criterion: domain.CriterionRegistry,
			Label:     loc.T("checklist.registry"),
			Passed:    registryOK,
			Display:   registryDisplay(result, loc),
		},
		{
			Criterion: domain.CriterionAbsence,
			Label:     loc.T("checklist.absence"),
			Passed:    result.Absence,
			Display:   flagDisplay(result.Absence, loc),
		},
		{
			Criterion: domain.CriterionSignature,
			Label:     loc.T("checklist.signature"),
			Passed:    result.Signature,
			Display:   flagDisplay(result.Signature, loc),
		},
	}

	approved := typeOK && codeOK && registryOK && result.Absence && result.Signature

	messageKey := "verdict.rejected"
	if approved {
		messageKey = "verdict.approved"
	}

	return &domain.ApprovalVerdict{
		Approved:  approved,
		Message:   loc.T(messageKey),
		Checklist: checklist,
	}
}

func codeDisplay(result *domain.AnalysisResult, loc *i18n.Localizer) string {
	if result.DiagnosisCode == nil {
		return loc.T("values.not_found")
	}
	return *result.DiagnosisCode
}

func registryDisplay(result *domain.AnalysisResult, loc *i18n.Localizer) string {
	if result.Registry == nil {
		return loc.T("values.not_found")
	}
	return loc.T("values.registry_with_status", map[string]string{
		"registry": result.Registry.Label,
		"status":   loc.T("registry_status." + string(result.Registry.Status)),
	})
}

func flagDisplay(found bool, loc *i18n.Localizer) string {
	if found {
		return loc.T("values.found_f")
	}
	return loc.T("values.not_found_f")
}
