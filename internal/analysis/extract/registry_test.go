package extract_test

import (
	"testing"

	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/internal/analysis/extract"
	"github.com/validaeja/validaeja-backend/internal/analysis/registry"
)

func TestRegistryExtractor_Extract(t *testing.T) {
	e := extract.NewRegistryExtractor(registry.NewSimulatedChecker())

	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantFound bool
	}{
		{
			name:      "type with state and number",
			text:      "Dr. Silva CRM/SP 123456",
			wantLabel: "CRM/SP 123456",
			wantFound: true,
		},
		{
			name:      "type without state",
			text:      "médico responsável CRM 123456",
			wantLabel: "CRM/ 123456",
			wantFound: true,
		},
		{
			name:      "lowercase input is normalized",
			text:      "crm/rj 98765",
			wantLabel: "CRM/RJ 98765",
			wantFound: true,
		},
		{
			name:      "space separated state",
			text:      "COREN SP 445566",
			wantLabel: "COREN/SP 445566",
			wantFound: true,
		},
		{
			name:      "other council types",
			text:      "fisioterapeuta CREFITO/MG 78901",
			wantLabel: "CREFITO/MG 78901",
			wantFound: true,
		},
		{
			name:      "first occurrence wins",
			text:      "CRP/SP 11111 e CRM/RJ 22222",
			wantLabel: "CRP/SP 11111",
			wantFound: true,
		},
		{
			name:      "token inside another word does not match",
			text:      "CRMs registrados 123456",
			wantFound: false,
		},
		{
			name:      "type without number does not match",
			text:      "CRM do responsável não informado",
			wantFound: false,
		},
		{
			name:      "empty text",
			text:      "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, found := e.Extract(tt.text)
			if found != tt.wantFound {
				t.Fatalf("Extract(%q) found = %v, want %v", tt.text, found, tt.wantFound)
			}
			if !found {
				return
			}
			if rec.Label != tt.wantLabel {
				t.Errorf("Extract(%q) label = %q, want %q", tt.text, rec.Label, tt.wantLabel)
			}
			if rec.Status != domain.RegistryStatusActive {
				t.Errorf("Extract(%q) status = %v, want active", tt.text, rec.Status)
			}
		})
	}
}

func TestRegistryExtractor_RecordFields(t *testing.T) {
	e := extract.NewRegistryExtractor(registry.NewSimulatedChecker())

	rec, found := e.Extract("Assinado por CRM/RJ 98765")
	if !found {
		t.Fatal("expected a registry match")
	}

	if rec.Type != "CRM" {
		t.Errorf("Type = %q, want CRM", rec.Type)
	}
	if rec.State != "RJ" {
		t.Errorf("State = %q, want RJ", rec.State)
	}
	if rec.Number != "98765" {
		t.Errorf("Number = %q, want 98765", rec.Number)
	}
}
