package utils

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "Acme Corp"},
		{"Acme/Corp", "Acme_Corp"},
		{`a\b:c*d?e"f<g>h|i`, "a_b_c_d_e_f_g_h_i"},
		{"../etc/passwd", "_etc_passwd"},
		{"  spaced  ", "spaced"},
		{"...", "report"},
		{"", "report"},
		{"///", "_"},
		{"line\nbreak", "line_break"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestDereferencePtr(t *testing.T) {
	s := "hello"
	if got := DereferencePtr(&s); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if got := DereferencePtr[string](nil); got != "" {
		t.Fatalf("expected zero value, got %q", got)
	}
	if got := DereferencePtr(nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if NilIfEmpty("") != nil {
		t.Fatal("expected nil for empty string")
	}
	if got := NilIfEmpty("x"); got == nil || *got != "x" {
		t.Fatalf("expected pointer to x, got %v", got)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@example.com", "first.last+tag@sub.example.co"}
	invalid := []string{"", "a", "a@", "@example.com", "a@example", "a b@example.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}
