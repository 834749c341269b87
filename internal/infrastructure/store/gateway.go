package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrInvalidID          = errors.New("store: invalid identifier")
	ErrNotFound           = errors.New("store: record not found")
	ErrDuplicate          = errors.New("store: unique constraint violated")
	ErrUnknownCollection  = errors.New("store: unknown collection")
	ErrInvalidFieldName   = errors.New("store: invalid field name")
	ErrInvalidAggregation = errors.New("store: invalid aggregation")
)

// Document is the JSON object persisted for a record, without its id.
type Document map[string]any

// Record is a stored document together with the id assigned on insert.
type Record struct {
	ID  string
	Doc Document
}

// CollectionSpec declares a collection, the top-level fields whose values must
// be unique across its records, and the reference fields worth indexing.
type CollectionSpec struct {
	Name    string
	Unique  []string
	Indexed []string
}

// FindOptions bounds and orders FindMatching. Records come back in insertion
// order unless Newest is set. Limit <= 0 means no limit.
type FindOptions struct {
	Limit  int
	Newest bool
}

// Aggregation groups the records matched by Match on GroupBy and averages the
// numeric field Average within each group. An empty GroupBy yields a single
// group over every matched record.
type Aggregation struct {
	Match   Predicate
	GroupBy string
	Average string
}

// Group is one output row of an Aggregation.
type Group struct {
	Key     string
	Average float64
	Count   int64
}

// Gateway is the uniform record store contract every entity service talks to.
type Gateway interface {
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	FindByID(ctx context.Context, collection, id string) (Record, error)
	FindAll(ctx context.Context, collection string) ([]Record, error)
	UpdateByID(ctx context.Context, collection, id string, fields Document) (int64, error)
	DeleteByID(ctx context.Context, collection, id string) (int64, error)
	FindMatching(ctx context.Context, collection string, where Predicate, opts FindOptions) ([]Record, error)
	Count(ctx context.Context, collection string, where Predicate) (int64, error)
	Aggregate(ctx context.Context, collection string, agg Aggregation) ([]Group, error)

	// AddToSet appends value to the string array field unless already present,
	// merging set into the document in the same write.
	AddToSet(ctx context.Context, collection, id, field, value string, set Document) (int64, error)
	// Pull removes every occurrence of value from the string array field,
	// merging set into the document in the same write.
	Pull(ctx context.Context, collection, id, field, value string, set Document) (int64, error)

	Ping(ctx context.Context) error
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// CheckID reports ErrInvalidID when id is not in the store's key format.
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

var fieldNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkField(name string) error {
	if !fieldNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	return nil
}

func checkSpecs(specs []CollectionSpec) error {
	for _, spec := range specs {
		if err := checkField(spec.Name); err != nil {
			return fmt.Errorf("collection %q: %w", spec.Name, err)
		}
		for _, f := range append(append([]string{}, spec.Unique...), spec.Indexed...) {
			if err := checkField(f); err != nil {
				return fmt.Errorf("collection %q: %w", spec.Name, err)
			}
		}
	}
	return nil
}
