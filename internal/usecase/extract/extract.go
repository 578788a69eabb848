// Package extract turns encoded nested cells (genres, keywords, cast, crew,
// production companies) into typed values before any business logic runs.
package extract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/filmrec/internal/codec/pylit"
	"github.com/kailas-cloud/filmrec/internal/domain"
)

// DirectorJob is the crew job that identifies the director.
const DirectorJob = "Director"

// Entity is one decoded element of an encoded entity list: a mapping of named fields.
type Entity struct {
	fields map[string]pylit.Value
}

// NewEntity wraps decoded fields.
func NewEntity(fields map[string]pylit.Value) Entity { return Entity{fields: fields} }

// Field returns a named field.
func (e Entity) Field(name string) (pylit.Value, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Text returns a string field; ok is false when absent or not a string.
func (e Entity) Text(name string) (string, bool) {
	v, ok := e.fields[name]
	if !ok || v.Kind() != pylit.String {
		return "", false
	}
	return v.Str(), true
}

// Entities decodes an encoded list of entities. Every element must be a mapping.
func Entities(field, cell string) ([]Entity, error) {
	v, err := pylit.Decode(cell)
	if err != nil {
		return nil, withField(field, err)
	}
	if v.Kind() != pylit.List {
		return nil, &domain.ParseError{Field: field, Msg: fmt.Sprintf("expected list, got %s", v.Kind())}
	}
	out := make([]Entity, 0, len(v.List()))
	for i, item := range v.List() {
		if item.Kind() != pylit.Dict {
			return nil, &domain.ParseError{
				Field: field,
				Msg:   fmt.Sprintf("element %d: expected mapping, got %s", i, item.Kind()),
			}
		}
		out = append(out, NewEntity(item.Dict()))
	}
	return out, nil
}

// Names returns the name of every entity in source order.
func Names(field string, ents []Entity) ([]string, error) {
	names := make([]string, 0, len(ents))
	for i, e := range ents {
		name, ok := e.Text("name")
		if !ok {
			return nil, missingName(field, i)
		}
		names = append(names, name)
	}
	return names, nil
}

// TopCast returns the names of the first n cast entries by billing order.
// Entries are stably ordered by their numeric "order" field when every entry has one,
// otherwise source order is kept.
func TopCast(field string, ents []Entity, n int) ([]string, error) {
	ordered := make([]Entity, len(ents))
	copy(ordered, ents)
	if allOrdered(ordered) {
		sort.SliceStable(ordered, func(i, j int) bool {
			oi, _ := ordered[i].Field("order")
			oj, _ := ordered[j].Field("order")
			return oi.Float() < oj.Float()
		})
	}
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return Names(field, ordered)
}

// Director returns the name of the first crew entry whose job is DirectorJob, or "".
func Director(field string, ents []Entity) (string, error) {
	for i, e := range ents {
		if job, _ := e.Text("job"); job != DirectorJob {
			continue
		}
		name, ok := e.Text("name")
		if !ok {
			return "", missingName(field, i)
		}
		return name, nil
	}
	return "", nil
}

// StringList decodes an encoded list of plain strings, as written by pylit.EncodeStrings.
func StringList(field, cell string) ([]string, error) {
	v, err := pylit.Decode(cell)
	if err != nil {
		return nil, withField(field, err)
	}
	if v.Kind() != pylit.List {
		return nil, &domain.ParseError{Field: field, Msg: fmt.Sprintf("expected list, got %s", v.Kind())}
	}
	out := make([]string, 0, len(v.List()))
	for i, item := range v.List() {
		if item.Kind() != pylit.String {
			return nil, &domain.ParseError{
				Field: field,
				Msg:   fmt.Sprintf("element %d: expected string, got %s", i, item.Kind()),
			}
		}
		out = append(out, item.Str())
	}
	return out, nil
}

func allOrdered(ents []Entity) bool {
	for _, e := range ents {
		o, ok := e.Field("order")
		if !ok || !o.IsNumber() {
			return false
		}
	}
	return true
}

func missingName(field string, i int) error {
	return &domain.ParseError{Field: field, Msg: fmt.Sprintf("element %d has no string name", i)}
}

func withField(field string, err error) error {
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		c := *pe
		c.Field = field
		return &c
	}
	return fmt.Errorf("%s: %w", field, err)
}
