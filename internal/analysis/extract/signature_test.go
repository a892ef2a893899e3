package extract_test

import (
	"testing"

	"github.com/validaeja/validaeja-backend/internal/analysis/extract"
)

func TestSignatureDetector_Detect(t *testing.T) {
	d := extract.NewSignatureDetector()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "full label",
			text: "Assinatura: Dr. Silva",
			want: true,
		},
		{
			name: "abbreviated label",
			text: "Ass: Dra. Costa",
			want: true,
		},
		{
			name: "lowercase",
			text: "assinatura: ilegível",
			want: true,
		},
		{
			name: "word without colon does not match",
			text: "documento sem assinatura do responsável",
			want: false,
		},
		{
			name: "empty text",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
