package approval_test

import (
	"reflect"
	"testing"

	"github.com/validaeja/validaeja-backend/internal/analysis/approval"
	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/pkg/i18n"
)

func completeResult() *domain.AnalysisResult {
	code := "J45.0"
	return &domain.AnalysisResult{
		DocumentType:  domain.DocumentTypeLaudo,
		DiagnosisCode: &code,
		Registry: &domain.RegistryRecord{
			Type:   "CRM",
			State:  "RJ",
			Number: "98765",
			Label:  "CRM/RJ 98765",
			Status: domain.RegistryStatusActive,
		},
		Absence:   true,
		Signature: true,
	}
}

func checklistByCriterion(v *domain.ApprovalVerdict) map[string]domain.ChecklistItem {
	items := make(map[string]domain.ChecklistItem, len(v.Checklist))
	for _, item := range v.Checklist {
		items[item.Criterion] = item
	}
	return items
}

func TestEvaluate_Approved(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.LocalePortuguese)

	verdict := approval.Evaluate(completeResult(), loc)

	if !verdict.Approved {
		t.Fatal("expected verdict to be approved")
	}
	if len(verdict.Checklist) != 5 {
		t.Fatalf("checklist has %d items, want 5", len(verdict.Checklist))
	}
	for _, item := range verdict.Checklist {
		if !item.Passed {
			t.Errorf("criterion %s failed, expected pass", item.Criterion)
		}
	}

	items := checklistByCriterion(verdict)
	if items[domain.CriterionDiagnosisCode].Display != "J45.0" {
		t.Errorf("diagnosis display = %q, want J45.0", items[domain.CriterionDiagnosisCode].Display)
	}
	if items[domain.CriterionRegistry].Display != "CRM/RJ 98765 (Status: Ativo)" {
		t.Errorf("registry display = %q", items[domain.CriterionRegistry].Display)
	}
}

func TestEvaluate_SingleCriterionFailure(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.LocalePortuguese)

	tests := []struct {
		name          string
		mutate        func(*domain.AnalysisResult)
		failCriterion string
	}{
		{
			name:          "missing diagnosis code",
			mutate:        func(r *domain.AnalysisResult) { r.DiagnosisCode = nil },
			failCriterion: domain.CriterionDiagnosisCode,
		},
		{
			name:          "wrong document type",
			mutate:        func(r *domain.AnalysisResult) { r.DocumentType = domain.DocumentTypeExame },
			failCriterion: domain.CriterionDocumentType,
		},
		{
			name:          "missing registry",
			mutate:        func(r *domain.AnalysisResult) { r.Registry = nil },
			failCriterion: domain.CriterionRegistry,
		},
		{
			name:          "inactive registry",
			mutate:        func(r *domain.AnalysisResult) { r.Registry.Status = domain.RegistryStatusUnknown },
			failCriterion: domain.CriterionRegistry,
		},
		{
			name:          "no absence indication",
			mutate:        func(r *domain.AnalysisResult) { r.Absence = false },
			failCriterion: domain.CriterionAbsence,
		},
		{
			name:          "no signature",
			mutate:        func(r *domain.AnalysisResult) { r.Signature = false },
			failCriterion: domain.CriterionSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := completeResult()
			tt.mutate(result)

			verdict := approval.Evaluate(result, loc)

			if verdict.Approved {
				t.Fatal("expected verdict to be rejected")
			}
			if got := verdict.FailedCriteria(); got != 1 {
				t.Fatalf("FailedCriteria() = %d, want 1", got)
			}
			for _, item := range verdict.Checklist {
				wantPassed := item.Criterion != tt.failCriterion
				if item.Passed != wantPassed {
					t.Errorf("criterion %s passed = %v, want %v", item.Criterion, item.Passed, wantPassed)
				}
			}
		})
	}
}

func TestEvaluate_UnknownDocumentAllAbsent(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.LocalePortuguese)

	verdict := approval.Evaluate(&domain.AnalysisResult{
		DocumentType: domain.DocumentTypeDesconhecido,
	}, loc)

	if verdict.Approved {
		t.Fatal("expected verdict to be rejected")
	}
	// Even with nothing found the checklist renders completely
	if len(verdict.Checklist) != 5 {
		t.Fatalf("checklist has %d items, want 5", len(verdict.Checklist))
	}

	items := checklistByCriterion(verdict)
	if items[domain.CriterionDiagnosisCode].Display != "Não encontrado" {
		t.Errorf("diagnosis display = %q, want Não encontrado", items[domain.CriterionDiagnosisCode].Display)
	}
	if items[domain.CriterionRegistry].Display != "Não encontrado" {
		t.Errorf("registry display = %q, want Não encontrado", items[domain.CriterionRegistry].Display)
	}
	if items[domain.CriterionAbsence].Display != "Não encontrada" {
		t.Errorf("absence display = %q, want Não encontrada", items[domain.CriterionAbsence].Display)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.LocalePortuguese)
	result := completeResult()

	first := approval.Evaluate(result, loc)
	second := approval.Evaluate(result, loc)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated evaluation produced different verdicts")
	}
}

func TestEvaluate_EnglishLocale(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.LocaleEnglish)

	result := completeResult()
	result.DiagnosisCode = nil

	verdict := approval.Evaluate(result, loc)

	items := checklistByCriterion(verdict)
	if items[domain.CriterionDiagnosisCode].Display != "Not found" {
		t.Errorf("diagnosis display = %q, want Not found", items[domain.CriterionDiagnosisCode].Display)
	}
	if items[domain.CriterionDocumentType].Display != "Report" {
		t.Errorf("document type display = %q, want Report", items[domain.CriterionDocumentType].Display)
	}
}
