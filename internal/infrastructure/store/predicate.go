package store

import (
	"fmt"
	"strings"
)

// Predicate selects records in FindMatching, Count and Aggregate. A nil
// Predicate matches every record.
type Predicate interface {
	matches(doc Document) bool
	fields() []string
}

// Eq matches records whose top-level string field equals Value exactly.
type Eq struct {
	Field string
	Value string
}

// Contains matches records whose top-level string field contains Substr,
// ignoring case. Substr is taken literally.
type Contains struct {
	Field  string
	Substr string
}

// Or matches when any of its predicates does. An empty Or matches nothing.
type Or []Predicate

// And matches when all of its predicates do. An empty And matches everything.
type And []Predicate

func (p Eq) matches(doc Document) bool {
	v, ok := doc[p.Field].(string)
	return ok && v == p.Value
}

func (p Eq) fields() []string { return []string{p.Field} }

func (p Contains) matches(doc Document) bool {
	v, ok := doc[p.Field].(string)
	return ok && strings.Contains(strings.ToLower(v), strings.ToLower(p.Substr))
}

func (p Contains) fields() []string { return []string{p.Field} }

func (p Or) matches(doc Document) bool {
	for _, q := range p {
		if match(q, doc) {
			return true
		}
	}
	return false
}

func (p Or) fields() []string { return collectFields(p) }

func (p And) matches(doc Document) bool {
	for _, q := range p {
		if !match(q, doc) {
			return false
		}
	}
	return true
}

func (p And) fields() []string { return collectFields(p) }

func match(p Predicate, doc Document) bool {
	if p == nil {
		return true
	}
	return p.matches(doc)
}

func collectFields(ps []Predicate) []string {
	var out []string
	for _, p := range ps {
		if p != nil {
			out = append(out, p.fields()...)
		}
	}
	return out
}

func checkPredicate(p Predicate) error {
	if p == nil {
		return nil
	}
	for _, f := range p.fields() {
		if err := checkField(f); err != nil {
			return err
		}
	}
	return nil
}

// AnyContains builds the case-insensitive "field1 OR field2 ..." substring
// predicate used by free-text search.
func AnyContains(substr string, fields ...string) Predicate {
	or := make(Or, 0, len(fields))
	for _, f := range fields {
		or = append(or, Contains{Field: f, Substr: substr})
	}
	return or
}

// numeric reads a JSON-decoded number out of a document field.
func numeric(doc Document, field string) (float64, bool) {
	switch v := doc[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func groupKey(doc Document, field string) string {
	if field == "" {
		return ""
	}
	switch v := doc[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
