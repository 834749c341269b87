package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Gateway = (*RedisStore)(nil)

const maxTxRetries = 10

// RedisStore keeps each collection as a hash of JSON documents, a sorted set
// holding insertion order and one value->id hash per unique field. Writes run
// under WATCH/MULTI so unique values stay consistent across processes.
//
//	{prefix}:{collection}:docs         HASH  id -> json
//	{prefix}:{collection}:order        ZSET  id scored by insertion sequence
//	{prefix}:{collection}:seq          STRING counter
//	{prefix}:{collection}:uniq:{field} HASH  value -> id
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	specs  map[string]CollectionSpec
}

func NewRedisStore(client redis.UniversalClient, prefix string, specs ...CollectionSpec) (*RedisStore, error) {
	if err := checkSpecs(specs); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "catalog"
	}
	s := &RedisStore{client: client, prefix: prefix, specs: make(map[string]CollectionSpec, len(specs))}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
	}
	return s, nil
}

func (s *RedisStore) spec(collection string) (CollectionSpec, error) {
	spec, ok := s.specs[collection]
	if !ok {
		return CollectionSpec{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return spec, nil
}

func (s *RedisStore) docsKey(c string) string        { return s.prefix + ":" + c + ":docs" }
func (s *RedisStore) orderKey(c string) string       { return s.prefix + ":" + c + ":order" }
func (s *RedisStore) seqKey(c string) string         { return s.prefix + ":" + c + ":seq" }
func (s *RedisStore) uniqKey(c, field string) string { return s.prefix + ":" + c + ":uniq:" + field }

func (s *RedisStore) watchKeys(spec CollectionSpec) []string {
	keys := []string{s.docsKey(spec.Name)}
	for _, f := range spec.Unique {
		keys = append(keys, s.uniqKey(spec.Name, f))
	}
	return keys
}

// watch runs fn optimistically, retrying when a watched key changed underneath.
func (s *RedisStore) watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = s.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("redis transaction retries exhausted: %w", err)
}

// ownerOf returns the id holding value for a unique field, or "" if free.
func (s *RedisStore) ownerOf(ctx context.Context, tx *redis.Tx, collection, field, value string) (string, error) {
	owner, err := tx.HGet(ctx, s.uniqKey(collection, field), value).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return owner, err
}

func (s *RedisStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	spec, err := s.spec(collection)
	if err != nil {
		return "", err
	}
	doc, err = normalize(doc)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := NewID()
	err = s.watch(ctx, func(tx *redis.Tx) error {
		for _, field := range spec.Unique {
			v := uniqueValue(doc, field)
			if v == "" {
				continue
			}
			owner, err := s.ownerOf(ctx, tx, collection, field, v)
			if err != nil {
				return err
			}
			if owner != "" {
				return ErrDuplicate
			}
		}

		seq, err := tx.Incr(ctx, s.seqKey(collection)).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.docsKey(collection), id, raw)
			pipe.ZAdd(ctx, s.orderKey(collection), redis.Z{Score: float64(seq), Member: id})
			for _, field := range spec.Unique {
				if v := uniqueValue(doc, field); v != "" {
					pipe.HSet(ctx, s.uniqKey(collection, field), v, id)
				}
			}
			return nil
		})
		return err
	}, s.watchKeys(spec)...)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return "", err
		}
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *RedisStore) FindByID(ctx context.Context, collection, id string) (Record, error) {
	if err := CheckID(id); err != nil {
		return Record{}, err
	}
	if _, err := s.spec(collection); err != nil {
		return Record{}, err
	}

	raw, err := s.client.HGet(ctx, s.docsKey(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("find %s by id: %w", collection, err)
	}
	return decodeRecord(id, raw)
}

func (s *RedisStore) FindAll(ctx context.Context, collection string) ([]Record, error) {
	if _, err := s.spec(collection); err != nil {
		return nil, err
	}

	ids, err := s.client.ZRange(ctx, s.orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}
	vals, err := s.client.HMGet(ctx, s.docsKey(collection), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	out := make([]Record, 0, len(ids))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// deleted between ZRANGE and HMGET
			continue
		}
		rec, err := decodeRecord(ids[i], raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) UpdateByID(ctx context.Context, collection, id string, fields Document) (int64, error) {
	fields, err := normalize(fields)
	if err != nil {
		return 0, err
	}
	return s.rewrite(ctx, collection, id, func(doc Document) Document {
		return merge(doc, fields)
	})
}

func (s *RedisStore) AddToSet(ctx context.Context, collection, id, field, value string, set Document) (int64, error) {
	if err := checkField(field); err != nil {
		return 0, err
	}
	set, err := normalize(set)
	if err != nil {
		return 0, err
	}
	return s.rewrite(ctx, collection, id, func(doc Document) Document {
		return merge(addToSet(doc, field, value), set)
	})
}

func (s *RedisStore) Pull(ctx context.Context, collection, id, field, value string, set Document) (int64, error) {
	if err := checkField(field); err != nil {
		return 0, err
	}
	set, err := normalize(set)
	if err != nil {
		return 0, err
	}
	return s.rewrite(ctx, collection, id, func(doc Document) Document {
		return merge(pull(doc, field, value), set)
	})
}

// rewrite replaces a document with fn(current), moving unique value
// ownership along with it.
func (s *RedisStore) rewrite(ctx context.Context, collection, id string, fn func(Document) Document) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	spec, err := s.spec(collection)
	if err != nil {
		return 0, err
	}

	var matched int64
	err = s.watch(ctx, func(tx *redis.Tx) error {
		matched = 0
		raw, err := tx.HGet(ctx, s.docsKey(collection), id).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		current, err := decodeRecord(id, raw)
		if err != nil {
			return err
		}
		next := fn(current.Doc)

		for _, field := range spec.Unique {
			v := uniqueValue(next, field)
			if v == "" {
				continue
			}
			owner, err := s.ownerOf(ctx, tx, collection, field, v)
			if err != nil {
				return err
			}
			if owner != "" && owner != id {
				return ErrDuplicate
			}
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.docsKey(collection), id, encoded)
			for _, field := range spec.Unique {
				before, after := uniqueValue(current.Doc, field), uniqueValue(next, field)
				if before == after {
					continue
				}
				if before != "" {
					pipe.HDel(ctx, s.uniqKey(collection, field), before)
				}
				if after != "" {
					pipe.HSet(ctx, s.uniqKey(collection, field), after, id)
				}
			}
			return nil
		})
		if err == nil {
			matched = 1
		}
		return err
	}, s.watchKeys(spec)...)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return 0, err
		}
		return 0, fmt.Errorf("update %s: %w", collection, err)
	}
	return matched, nil
}

func (s *RedisStore) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	spec, err := s.spec(collection)
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = s.watch(ctx, func(tx *redis.Tx) error {
		deleted = 0
		raw, err := tx.HGet(ctx, s.docsKey(collection), id).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		current, err := decodeRecord(id, raw)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, s.docsKey(collection), id)
			pipe.ZRem(ctx, s.orderKey(collection), id)
			for _, field := range spec.Unique {
				if v := uniqueValue(current.Doc, field); v != "" {
					pipe.HDel(ctx, s.uniqKey(collection, field), v)
				}
			}
			return nil
		})
		if err == nil {
			deleted = 1
		}
		return err
	}, s.watchKeys(spec)...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", collection, err)
	}
	return deleted, nil
}

func (s *RedisStore) FindMatching(ctx context.Context, collection string, where Predicate, opts FindOptions) ([]Record, error) {
	if err := checkPredicate(where); err != nil {
		return nil, err
	}
	recs, err := s.FindAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return filter(recs, where, opts), nil
}

func (s *RedisStore) Count(ctx context.Context, collection string, where Predicate) (int64, error) {
	recs, err := s.FindMatching(ctx, collection, where, FindOptions{})
	if err != nil {
		return 0, err
	}
	return int64(len(recs)), nil
}

func (s *RedisStore) Aggregate(ctx context.Context, collection string, agg Aggregation) ([]Group, error) {
	if err := checkAggregation(agg); err != nil {
		return nil, err
	}
	recs, err := s.FindAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return aggregate(recs, agg), nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decodeRecord(id, raw string) (Record, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Record{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return Record{ID: id, Doc: doc}, nil
}
