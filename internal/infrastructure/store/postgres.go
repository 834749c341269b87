package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/database"
)

var _ Gateway = (*PostgresStore)(nil)

// PostgresStore keeps each collection in its own table as JSONB documents.
// Unique fields are backed by partial unique expression indexes, so duplicate
// checks hold under concurrent writers.
type PostgresStore struct {
	pool  *pgxpool.Pool
	specs map[string]CollectionSpec
}

func NewPostgresStore(pool *pgxpool.Pool, specs ...CollectionSpec) (*PostgresStore, error) {
	if err := checkSpecs(specs); err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool, specs: make(map[string]CollectionSpec, len(specs))}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
	}
	return s, nil
}

// Migrate creates missing tables and indexes for every declared collection.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		for _, spec := range s.specs {
			for _, stmt := range createTableDDL(spec) {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("migrate %s: %w", spec.Name, err)
				}
			}
			log.Debug().Str("collection", spec.Name).Msg("collection ready")
		}
		return nil
	})
}

func (s *PostgresStore) table(collection string) (string, error) {
	if _, ok := s.specs[collection]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return collection, nil
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	table, err := s.table(collection)
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
	q := fmt.Sprintf("INSERT INTO %s (id, doc) VALUES ($1::uuid, $2::jsonb)", pq.QuoteIdentifier(table))
	if _, err := s.pool.Exec(ctx, q, id, raw); err != nil {
		return "", translatePgError(err, "insert into "+table)
	}
	return id, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, collection, id string) (Record, error) {
	if err := CheckID(id); err != nil {
		return Record{}, err
	}
	table, err := s.table(collection)
	if err != nil {
		return Record{}, err
	}

	q := fmt.Sprintf("SELECT id::text, doc FROM %s WHERE id = $1::uuid", pq.QuoteIdentifier(table))
	rec, err := scanRecord(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("find %s by id: %w", table, err)
	}
	return rec, nil
}

func (s *PostgresStore) FindAll(ctx context.Context, collection string) ([]Record, error) {
	return s.FindMatching(ctx, collection, nil, FindOptions{})
}

func (s *PostgresStore) UpdateByID(ctx context.Context, collection, id string, fields Document) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}
	fields, err = normalize(fields)
	if err != nil {
		return 0, err
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return 0, fmt.Errorf("encode fields: %w", err)
	}

	q := fmt.Sprintf("UPDATE %s SET doc = doc || $2::jsonb WHERE id = $1::uuid", pq.QuoteIdentifier(table))
	tag, err := s.pool.Exec(ctx, q, id, raw)
	if err != nil {
		return 0, translatePgError(err, "update "+table)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, collection, id string) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}

	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1::uuid", pq.QuoteIdentifier(table))
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) FindMatching(ctx context.Context, collection string, where Predicate, opts FindOptions) ([]Record, error) {
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}
	q, args, err := selectQuery(table, where, opts)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context, collection string, where Predicate) (int64, error) {
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}
	q, args, err := countQuery(table, where)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (s *PostgresStore) Aggregate(ctx context.Context, collection string, agg Aggregation) ([]Group, error) {
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}
	q, args, err := aggregateQuery(table, agg)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]Group, 0)
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.Key, &g.Average, &g.Count); err != nil {
			return nil, fmt.Errorf("scan aggregate %s: %w", table, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddToSet(ctx context.Context, collection, id, field, value string, set Document) (int64, error) {
	return s.mutate(ctx, collection, id, field, set, func(doc Document) Document {
		return addToSet(doc, field, value)
	})
}

func (s *PostgresStore) Pull(ctx context.Context, collection, id, field, value string, set Document) (int64, error) {
	return s.mutate(ctx, collection, id, field, set, func(doc Document) Document {
		return pull(doc, field, value)
	})
}

// mutate applies fn to the document under a row lock, so concurrent set
// mutations on the same record serialise instead of losing writes.
func (s *PostgresStore) mutate(ctx context.Context, collection, id, field string, set Document, fn func(Document) Document) (int64, error) {
	if err := CheckID(id); err != nil {
		return 0, err
	}
	if err := checkField(field); err != nil {
		return 0, err
	}
	table, err := s.table(collection)
	if err != nil {
		return 0, err
	}
	set, err = normalize(set)
	if err != nil {
		return 0, err
	}

	return database.WithTransactionResult(ctx, s.pool, func(tx pgx.Tx) (int64, error) {
		q := fmt.Sprintf("SELECT id::text, doc FROM %s WHERE id = $1::uuid FOR UPDATE", pq.QuoteIdentifier(table))
		rec, err := scanRecord(tx.QueryRow(ctx, q, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, nil
			}
			return 0, fmt.Errorf("lock %s: %w", table, err)
		}

		raw, err := json.Marshal(merge(fn(rec.Doc), set))
		if err != nil {
			return 0, fmt.Errorf("encode document: %w", err)
		}
		q = fmt.Sprintf("UPDATE %s SET doc = $2::jsonb WHERE id = $1::uuid", pq.QuoteIdentifier(table))
		tag, err := tx.Exec(ctx, q, id, raw)
		if err != nil {
			return 0, translatePgError(err, "update "+table)
		}
		return tag.RowsAffected(), nil
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec Record
		raw []byte
	)
	if err := row.Scan(&rec.ID, &raw); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(raw, &rec.Doc); err != nil {
		return Record{}, fmt.Errorf("decode document %s: %w", rec.ID, err)
	}
	return rec, nil
}

func translatePgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
