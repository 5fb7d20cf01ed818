package i18n

import "testing"

func TestDefaultsToArabic(t *testing.T) {
	p := NewPrinter()
	if p.Lang() != "ar" || !p.RTL() {
		t.Errorf("lang = %q rtl = %v, want ar rtl", p.Lang(), p.RTL())
	}
	if got := p.Sprintf(Submitted); got != "تم تقديم النموذج بنجاح!" {
		t.Errorf("submitted = %q", got)
	}
}

func TestAcceptLanguage(t *testing.T) {
	tests := []struct {
		tags []string
		want string
	}{
		{[]string{"en-GB,en;q=0.8"}, "en"},
		{[]string{"fr-FR"}, "ar"},
		{[]string{"not a tag"}, "ar"},
		{[]string{"ar", "en"}, "ar"},
	}

	for _, tt := range tests {
		if got := NewPrinter(tt.tags...).Lang(); got != tt.want {
			t.Errorf("NewPrinter(%v) = %q, want %q", tt.tags, got, tt.want)
		}
	}
}

func TestFormatArguments(t *testing.T) {
	p := NewPrinter("en")
	if got := p.Sprintf(SubmitFailed, "boom"); got != "Error submitting the form: boom" {
		t.Errorf("got %q", got)
	}
}

func TestEveryArabicKeyHasEnglish(t *testing.T) {
	for key := range arabic {
		if _, ok := english[key]; !ok {
			t.Errorf("missing english message for %q", key)
		}
	}
}

func TestFieldLabel(t *testing.T) {
	if got := NewPrinter().Field("dealer_code"); got != "اسم المعرض" {
		t.Errorf("label = %q", got)
	}
}
