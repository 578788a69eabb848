package pylit

import (
	"testing"
)

func TestEncodeStrings(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "[]"},
		{[]string{"Drama"}, "['Drama']"},
		{[]string{"Action", "Crime"}, "['Action', 'Crime']"},
		{[]string{"Ma'am"}, `["Ma'am"]`},
		{[]string{`Both ' and "`}, `['Both \' and "']`},
		{[]string{`back\slash`}, `['back\\slash']`},
		{[]string{"line\nbreak"}, `['line\nbreak']`},
		{[]string{"Amélie"}, "['Amélie']"},
		{[]string{"Caf\xe9"}, "['Caf\xe9']"},
	}
	for _, tc := range tests {
		if got := EncodeStrings(tc.in); got != tc.want {
			t.Errorf("EncodeStrings(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestEncodeStrings_RoundTrip(t *testing.T) {
	in := []string{"Ma'am", `say "hi"`, `mix ' " \`, "tab\tx", " nbsp", "日本語", "", "Caf\xe9", "\xff\xfe mixed é"}
	v, err := Decode(EncodeStrings(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	items := v.List()
	if len(items) != len(in) {
		t.Fatalf("expected %d items, got %d", len(in), len(items))
	}
	for i, item := range items {
		if item.Str() != in[i] {
			t.Errorf("item %d = %q, want %q", i, item.Str(), in[i])
		}
	}
}
