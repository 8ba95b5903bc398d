package prompt

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		tag  language.Tag
		want Copy
	}{
		{
			name: "english",
			tag:  language.English,
			want: Copy{
				Title:   "Are you enjoying Goobergine?",
				Message: "Please let us know what you think!",
				Yes:     "Love it! 🥰",
				No:      "Not really",
			},
		},
		{
			name: "french",
			tag:  language.French,
			want: Copy{
				Title:   "Vous aimez Goobergine ?",
				Message: "Dites-nous ce que vous en pensez !",
				Yes:     "J'adore ! 🥰",
				No:      "Pas vraiment",
			},
		},
		{
			name: "untranslated falls back to english",
			tag:  language.Japanese,
			want: Copy{
				Title:   "Are you enjoying Goobergine?",
				Message: "Please let us know what you think!",
				Yes:     "Love it! 🥰",
				No:      "Not really",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.tag, "Goobergine"); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEveryLanguageTranslatesEveryKey(t *testing.T) {
	keys := []string{keyTitle, keyMessage, keyYes, keyNo, keyShare}
	for _, tag := range languages()[1:] {
		for _, key := range keys {
			if _, ok := translations[tag][key]; !ok {
				t.Errorf("%s: missing translation for %q", tag, key)
			}
		}
	}
}

func TestReviewURL(t *testing.T) {
	got, err := ReviewURL("id1234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://apps.apple.com/in/app/app-name/id1234567?action=write-review"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := ReviewURL("  "); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestNewShare(t *testing.T) {
	s := NewShare(language.German, "Goobergine", "https://example.com/app")
	if s.Text != "Schau dir Goobergine an!" {
		t.Errorf("got text %q", s.Text)
	}
	if s.URL != "https://example.com/app" {
		t.Errorf("got url %q", s.URL)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"en", true},
		{"en-GB", true},
		{"fr-CA", true},
		{"de", true},
		{"es-MX", true},
		{"ja", false},
	}
	for _, tt := range tests {
		if got := Supported(language.MustParse(tt.tag)); got != tt.want {
			t.Errorf("Supported(%s) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}
