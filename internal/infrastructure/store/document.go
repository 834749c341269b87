package store

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Encode converts a value into the JSON-normalised Document form every
// backend persists. The "id" key is dropped; ids live outside documents.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(doc, "id")
	return doc, nil
}

// Decode fills v from a record, exposing the record id under the "id" key.
func Decode(rec Record, v any) error {
	doc := make(Document, len(rec.Doc)+1)
	for k, val := range rec.Doc {
		doc[k] = val
	}
	doc["id"] = rec.ID
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode record %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record %s: %w", rec.ID, err)
	}
	return nil
}

func normalize(doc Document) (Document, error) {
	if doc == nil {
		return Document{}, nil
	}
	return Encode(doc)
}

func merge(dst, src Document) Document {
	out := make(Document, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

func stringSet(doc Document, field string) []string {
	items, _ := doc[field].([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func addToSet(doc Document, field, value string) Document {
	items := stringSet(doc, field)
	for _, it := range items {
		if it == value {
			return merge(doc, Document{field: toAny(items)})
		}
	}
	return merge(doc, Document{field: toAny(append(items, value))})
}

func pull(doc Document, field, value string) Document {
	items := stringSet(doc, field)
	kept := items[:0]
	for _, it := range items {
		if it != value {
			kept = append(kept, it)
		}
	}
	return merge(doc, Document{field: toAny(kept)})
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

// aggregate evaluates an Aggregation over already-loaded records. It backs the
// memory and redis stores; postgres pushes the same work into SQL.
func aggregate(recs []Record, agg Aggregation) []Group {
	type acc struct {
		sum   float64
		n     int64
		count int64
	}
	groups := map[string]*acc{}
	for _, rec := range recs {
		if !match(agg.Match, rec.Doc) {
			continue
		}
		key := groupKey(rec.Doc, agg.GroupBy)
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.count++
		if agg.Average != "" {
			if v, ok := numeric(rec.Doc, agg.Average); ok {
				a.sum += v
				a.n++
			}
		}
	}

	out := make([]Group, 0, len(groups))
	for key, a := range groups {
		g := Group{Key: key, Count: a.count}
		if a.n > 0 {
			g.Average = a.sum / float64(a.n)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func filter(recs []Record, where Predicate, opts FindOptions) []Record {
	out := make([]Record, 0)
	n := len(recs)
	for i := 0; i < n; i++ {
		rec := recs[i]
		if opts.Newest {
			rec = recs[n-1-i]
		}
		if !match(where, rec.Doc) {
			continue
		}
		out = append(out, rec)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}

func checkAggregation(agg Aggregation) error {
	if err := checkPredicate(agg.Match); err != nil {
		return err
	}
	if agg.GroupBy != "" {
		if err := checkField(agg.GroupBy); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAggregation, err)
		}
	}
	if agg.Average != "" {
		if err := checkField(agg.Average); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAggregation, err)
		}
	}
	return nil
}

// uniqueValue returns the string form of a unique field, or "" when the field
// is absent or not a string. Empty values never take part in uniqueness.
func uniqueValue(doc Document, field string) string {
	v, _ := doc[field].(string)
	return v
}
