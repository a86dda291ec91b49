package display

import (
	"testing"
)

func TestPaint_Enabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tests := []struct {
		role Role
		want string
	}{
		{Heading, "\033[1mx\033[0m"},
		{Muted, "\033[2mx\033[0m"},
		{Current, "\033[90mx\033[0m"},
		{Next, "\033[1m\033[36mx\033[0m"},
		{Warning, "\033[33mx\033[0m"},
		{Local, "\033[32mx\033[0m"},
		{Plain, "x"},
	}
	for _, tt := range tests {
		if got := Paint(tt.role, "x"); got != tt.want {
			t.Errorf("Paint(%d, x) = %q, want %q", tt.role, got, tt.want)
		}
	}

	if got := Paint(Heading, ""); got != "" {
		t.Errorf("Paint of empty text = %q, want empty", got)
	}
}

func TestPaint_Disabled(t *testing.T) {
	SetEnabled(false)

	for _, role := range []Role{Plain, Heading, Muted, Current, Next, Warning, Local} {
		if got := Paint(role, "hello"); got != "hello" {
			t.Errorf("Paint(%d) with colors disabled = %q, want plain", role, got)
		}
	}
	if Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}

func TestSourceLabel(t *testing.T) {
	SetEnabled(false)

	tests := map[string]string{
		"local":  "local dataset",
		"remote": "remote API",
		"other":  "other",
	}
	for in, want := range tests {
		if got := SourceLabel(in); got != want {
			t.Errorf("SourceLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
