package textutil

import "testing"

func TestUnderscore(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Great Pack", "My_Great_Pack"},
		{"  Test Pack  ", "Test_Pack"},
		{"a/b: c?", "a-b-_c"},
		{"Café Noir", "Café_Noir"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Underscore(tc.in); got != tc.want {
			t.Errorf("Underscore(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := SanitizeFileName(` a<b>|"c" `); got != "abc" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"staging_created": "Staging Created",
		"archived":        "Archived",
		"":                "",
	}
	for in, want := range tests {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "yes", "no") != "yes" || Ternary(false, 1, 2) != 2 {
		t.Fatal("unexpected Ternary result")
	}
}
