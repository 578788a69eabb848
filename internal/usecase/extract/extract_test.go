package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/filmrec/internal/domain"
)

func mustEntities(t *testing.T, field, cell string) []Entity {
	t.Helper()
	ents, err := Entities(field, cell)
	if err != nil {
		t.Fatalf("Entities(%s): %v", field, err)
	}
	return ents
}

func TestNames_SourceOrder(t *testing.T) {
	ents := mustEntities(t, "genres",
		`[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}, {'id': 10751, 'name': 'Family'}]`)
	got, err := Names("genres", ents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Animation", "Comedy", "Family"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNames_Empty(t *testing.T) {
	got, err := Names("keywords", mustEntities(t, "keywords", "[]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestNames_MissingName(t *testing.T) {
	ents := mustEntities(t, "genres", `[{'id': 1}]`)
	_, err := Names("genres", ents)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestEntities_Malformed(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{"empty", ""},
		{"truncated", `[{'id': 1, 'name': 'A'}`},
		{"not a list", `{'id': 1, 'name': 'A'}`},
		{"scalar elements", `['Action', 'Drama']`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Entities("genres", tc.cell)
			var pe *domain.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Field != "genres" {
				t.Errorf("expected field genres, got %q", pe.Field)
			}
		})
	}
}

func TestTopCast_KeepsFiveByBillingOrder(t *testing.T) {
	cell := `[{'name': 'F', 'order': 5}, {'name': 'A', 'order': 0}, {'name': 'B', 'order': 1},
	{'name': 'C', 'order': 2}, {'name': 'D', 'order': 3}, {'name': 'E', 'order': 4}, {'name': 'G', 'order': 6}]`
	got, err := TopCast("cast", mustEntities(t, "cast", cell), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A", "B", "C", "D", "E"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTopCast_SourceOrderWithoutBilling(t *testing.T) {
	cell := `[{'name': 'Z'}, {'name': 'Y'}]`
	got, err := TopCast("cast", mustEntities(t, "cast", cell), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Z", "Y"}) {
		t.Errorf("got %v", got)
	}
}

func TestDirector(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{
			name: "first director wins",
			cell: `[{'job': 'Producer', 'name': 'P'}, {'job': 'Director', 'name': 'D1'}, {'job': 'Director', 'name': 'D2'}]`,
			want: "D1",
		},
		{name: "no director", cell: `[{'job': 'Writer', 'name': 'W'}]`, want: ""},
		{name: "empty crew", cell: `[]`, want: ""},
		{name: "job is case sensitive", cell: `[{'job': 'director', 'name': 'X'}]`, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Director("crew", mustEntities(t, "crew", tc.cell))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	got, err := StringList("cast", `['Tom Hanks', "Ma'am"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Tom Hanks", "Ma'am"}) {
		t.Errorf("got %v", got)
	}
	if _, err := StringList("cast", `[1, 2]`); !errors.Is(err, domain.ErrParse) {
		t.Errorf("expected ErrParse for non-string items, got %v", err)
	}
}
