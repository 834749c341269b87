package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared/apperror"
)

// MaxResults caps the hits returned for one query.
const MaxResults = 100

var (
	ErrUnknownEntity = errors.New("search entity not found")
	ErrEmptyQuery    = errors.New("q: cannot be blank")
)

// AssembleFunc turns a matched record into its public response.
type AssembleFunc func(ctx context.Context, rec store.Record) (any, error)

// Target declares how one entity is searched: the collection, the fields the
// query is matched against, and the assembler for each hit.
type Target struct {
	Collection string
	Fields     []string
	Assemble   AssembleFunc
}

// NewTarget adapts a typed assembler such as a service's Assemble method.
func NewTarget[T any](collection string, fields []string, assemble func(context.Context, store.Record) (T, error)) Target {
	return Target{
		Collection: collection,
		Fields:     fields,
		Assemble: func(ctx context.Context, rec store.Record) (any, error) {
			return assemble(ctx, rec)
		},
	}
}

type ServiceInterface interface {
	// Search matches q case-insensitively as a literal substring of any of the
	// entity's fields and assembles at most MaxResults hits in store order.
	Search(ctx context.Context, entity, q string) ([]any, error)
	Entities() []string
}

type searchService struct {
	gw      store.Gateway
	targets map[string]Target
}

// NewSearchService keys targets by the entity name used in the URL.
func NewSearchService(gw store.Gateway, targets map[string]Target) ServiceInterface {
	return &searchService{gw: gw, targets: targets}
}

func (s *searchService) Search(ctx context.Context, entity, q string) ([]any, error) {
	target, ok := s.targets[entity]
	if !ok {
		return nil, apperror.NotFound(ErrUnknownEntity)
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation(ErrEmptyQuery)
	}

	recs, err := s.gw.FindMatching(ctx, target.Collection,
		store.AnyContains(q, target.Fields...),
		store.FindOptions{Limit: MaxResults},
	)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	results := make([]any, 0, len(recs))
	for _, rec := range recs {
		resp, err := target.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		results = append(results, resp)
	}
	return results, nil
}

func (s *searchService) Entities() []string {
	out := make([]string, 0, len(s.targets))
	for name := range s.targets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
