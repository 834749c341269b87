package store

import (
	"context"
	"fmt"
	"sync"
)

var _ Gateway = (*MemoryStore)(nil)

type memoryCollection struct {
	spec  CollectionSpec
	order []string
	docs  map[string]Document
}

// MemoryStore keeps every collection in process memory. It backs tests and
// STORE_DRIVER=memory; contents are lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore(specs ...CollectionSpec) (*MemoryStore, error) {
	if err := checkSpecs(specs); err != nil {
		return nil, err
	}
	m := &MemoryStore{collections: make(map[string]*memoryCollection, len(specs))}
	for _, spec := range specs {
		m.collections[spec.Name] = &memoryCollection{spec: spec, docs: map[string]Document{}}
	}
	return m, nil
}

func (m *MemoryStore) collection(name string) (*memoryCollection, error) {
	c, ok := m.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

// conflicts reports whether doc would duplicate a unique value held by a
// record other than selfID.
func (c *memoryCollection) conflicts(selfID string, doc Document) bool {
	for _, field := range c.spec.Unique {
		want := uniqueValue(doc, field)
		if want == "" {
			continue
		}
		for id, other := range c.docs {
			if id != selfID && uniqueValue(other, field) == want {
				return true
			}
		}
	}
	return false
}

func (c *memoryCollection) records() []Record {
	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Record{ID: id, Doc: c.docs[id]})
	}
	return out
}

func (m *MemoryStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	doc, err := normalize(doc)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return "", err
	}
	if c.conflicts("", doc) {
		return "", ErrDuplicate
	}
	id := NewID()
	c.docs[id] = doc
	c.order = append(c.order, id)
	return id, nil
}

func (m *MemoryStore) FindByID(ctx context.Context, collection, id string) (Record, error) {
	if err := CheckID(id); err != nil {
		return Record{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, err := m.collection(collection)
	if err != nil {
		return Record{}, err
	}
	doc, ok := c.docs[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Doc: doc}, nil
}

func (m *MemoryStore) FindAll(ctx context.Context, collection string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	return c.records(), nil
}

func (m *MemoryStore) UpdateByID(ctx context.Context, collection, id string, fields Document) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	fields, err := normalize(fields)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}
	current, ok := c.docs[id]
	if !ok {
		return 0, nil
	}
	next := merge(current, fields)
	if c.conflicts(id, next) {
		return 0, ErrDuplicate
	}
	c.docs[id] = next
	return 1, nil
}

func (m *MemoryStore) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}
	if _, ok := c.docs[id]; !ok {
		return 0, nil
	}
	delete(c.docs, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (m *MemoryStore) FindMatching(ctx context.Context, collection string, where Predicate, opts FindOptions) ([]Record, error) {
	if err := checkPredicate(where); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	return filter(c.records(), where, opts), nil
}

func (m *MemoryStore) Count(ctx context.Context, collection string, where Predicate) (int64, error) {
	recs, err := m.FindMatching(ctx, collection, where, FindOptions{})
	if err != nil {
		return 0, err
	}
	return int64(len(recs)), nil
}

func (m *MemoryStore) Aggregate(ctx context.Context, collection string, agg Aggregation) ([]Group, error) {
	if err := checkAggregation(agg); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	return aggregate(c.records(), agg), nil
}

func (m *MemoryStore) AddToSet(ctx context.Context, collection, id, field, value string, set Document) (int64, error) {
	return m.mutate(collection, id, field, set, func(doc Document) Document {
		return addToSet(doc, field, value)
	})
}

func (m *MemoryStore) Pull(ctx context.Context, collection, id, field, value string, set Document) (int64, error) {
	return m.mutate(collection, id, field, set, func(doc Document) Document {
		return pull(doc, field, value)
	})
}

func (m *MemoryStore) mutate(collection, id, field string, set Document, fn func(Document) Document) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	if err := checkField(field); err != nil {
		return 0, err
	}
	set, err := normalize(set)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.collection(collection)
	if err != nil {
		return 0, err
	}
	current, ok := c.docs[id]
	if !ok {
		return 0, nil
	}
	c.docs[id] = merge(fn(current), set)
	return 1, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
