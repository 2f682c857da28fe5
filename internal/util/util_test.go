package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Vía Norte Km 12", "via-norte-km-12"},
		{"  PMV--Puente  ", "pmv-puente"},
		{"Señal Ñuñoa", "senal-nunoa"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("font A\x00\x00 "); got != "font A" {
		t.Errorf("Normalize = %q", got)
	}
}
