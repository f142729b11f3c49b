package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Breakfast", "breakfast"},
		{"Quick Dinner", "quick-dinner"},
		{"Café au Lait", "cafe-au-lait"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Sweet & Sour!", "sweet-sour"},
		{"already-a-slug", "already-a-slug"},
		{"ÀÉÎÕÜ", "aeiou"},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"a", "breakfast", "quick-dinner", "x1-y2"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space", "émoji"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}
