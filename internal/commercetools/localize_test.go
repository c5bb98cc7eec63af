package commercetools

import (
	"log/slog"
	"testing"
)

func testCodec() *Codec {
	return &Codec{logger: slog.Default()}
}

func TestLocalizeString(t *testing.T) {
	c := testCodec()

	tests := []struct {
		name string
		text map[string]string
		lang string
		want string
	}{
		{
			name: "requested language",
			text: map[string]string{"de": "Schuhe", "en": "Shoes"},
			lang: "de",
			want: "Schuhe",
		},
		{
			name: "falls back to english",
			text: map[string]string{"en": "Shoes", "fr": "Chaussures"},
			lang: "de",
			want: "Shoes",
		},
		{
			name: "falls back to first key",
			text: map[string]string{"fr": "Chaussures", "it": "Scarpe"},
			lang: "de",
			want: "Chaussures",
		},
		{
			name: "empty language defaults to english",
			text: map[string]string{"en": "Shoes", "de": "Schuhe"},
			lang: "",
			want: "Shoes",
		},
		{
			name: "empty translation falls back to english",
			text: map[string]string{"de": "", "en": "Shoes"},
			lang: "de",
			want: "Shoes",
		},
		{
			name: "empty english falls back to first non empty key",
			text: map[string]string{"en": "", "fr": "Chaussures"},
			lang: "de",
			want: "Chaussures",
		},
		{
			name: "all translations empty",
			text: map[string]string{"de": "", "en": ""},
			lang: "de",
			want: "",
		},
		{
			name: "empty map",
			text: map[string]string{},
			lang: "en",
			want: "",
		},
		{
			name: "nil map",
			text: nil,
			lang: "en",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.localizeString(tt.text, tt.lang); got != tt.want {
				t.Errorf("localizeString(%v, %q) = %q, want %q", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}

func TestLocalizeValue(t *testing.T) {
	c := testCodec()

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{
			name:  "plain string",
			value: "42",
			want:  "42",
		},
		{
			name:  "boolean",
			value: true,
			want:  true,
		},
		{
			name:  "number",
			value: float64(7),
			want:  float64(7),
		},
		{
			name:  "enum with plain label",
			value: map[string]any{"key": "red", "label": "Red"},
			want:  "Red",
		},
		{
			name:  "enum with localized label",
			value: map[string]any{"key": "red", "label": map[string]any{"en": "Red", "de": "Rot"}},
			want:  "Rot",
		},
		{
			name:  "localized text map",
			value: map[string]any{"en": "Cotton", "de": "Baumwolle"},
			want:  "Baumwolle",
		},
		{
			name:  "nil",
			value: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.localizeValue(tt.value, "de"); got != tt.want {
				t.Errorf("localizeValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
