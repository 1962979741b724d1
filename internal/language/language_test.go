package language

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAll(t *testing.T) {
	langs := All()
	if len(langs) != 12 {
		t.Fatalf("All() returned %d languages, want 12", len(langs))
	}
	if langs[0] != English || langs[len(langs)-1] != Italian {
		t.Errorf("All() order = %v", langs)
	}

	// Mutating the result must not affect the package list
	langs[0] = "Klingon"
	if All()[0] != English {
		t.Error("All() exposed internal slice")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		lang Language
		code string
	}{
		{English, "en-US"},
		{Spanish, "es-ES"},
		{French, "fr-FR"},
		{German, "de-DE"},
		{Chinese, "zh-CN"},
		{Japanese, "ja-JP"},
		{Korean, "ko-KR"},
		{Portuguese, "pt-BR"},
		{Russian, "ru-RU"},
		{Arabic, "ar-SA"},
		{Hindi, "hi-IN"},
		{Italian, "it-IT"},
		{"Klingon", "en-US"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			if got := tt.lang.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"Spanish", Spanish, false},
		{"spanish", Spanish, false},
		{"  German ", German, false},
		{"Chinese (Mandarin)", Chinese, false},
		{"chinese", Chinese, false},
		{"zh-CN", Chinese, false},
		{"ja", Japanese, false},
		{"PT-br", Portuguese, false},
		{"", "", true},
		{"Klingon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLanguage) {
					t.Errorf("Parse(%q) error = %v, want ErrUnknownLanguage", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var l Language
	if err := json.Unmarshal([]byte(`"Korean"`), &l); err != nil {
		t.Fatalf("unmarshal Korean: %v", err)
	}
	if l != Korean {
		t.Errorf("got %q, want Korean", l)
	}

	if err := json.Unmarshal([]byte(`"korean"`), &l); err == nil {
		t.Error("expected error for non-canonical name")
	}
}
