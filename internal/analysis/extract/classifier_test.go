package extract_test

import (
	"testing"

	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/internal/analysis/extract"
)

func TestClassifier_Classify(t *testing.T) {
	c := extract.NewClassifier()

	tests := []struct {
		name string
		text string
		want domain.DocumentType
	}{
		{
			name: "report keyword only",
			text: "LAUDO MÉDICO emitido em 12/03/2024",
			want: domain.DocumentTypeLaudo,
		},
		{
			name: "atestado counts as report",
			text: "Atestado para fins de trancamento",
			want: domain.DocumentTypeLaudo,
		},
		{
			name: "exam keyword only",
			text: "Resultado de hemograma completo",
			want: domain.DocumentTypeExame,
		},
		{
			name: "exam keyword with accents",
			text: "Ressonância Magnética do joelho esquerdo",
			want: domain.DocumentTypeExame,
		},
		{
			name: "report and exam keywords",
			text: "LAUDO MÉDICO anexo ao resultado de tomografia",
			want: domain.DocumentTypeLaudoComExame,
		},
		{
			name: "case insensitive",
			text: "RAIO-X DE TÓRAX",
			want: domain.DocumentTypeExame,
		},
		{
			name: "no keywords",
			text: "Receita de medicamento controlado",
			want: domain.DocumentTypeDesconhecido,
		},
		{
			name: "empty text",
			text: "",
			want: domain.DocumentTypeDesconhecido,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
