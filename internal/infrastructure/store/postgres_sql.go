package store

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// sqlBuilder compiles predicates into a parameterised WHERE clause over the
// JSONB "doc" column. Field names and values always travel as arguments.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) where(p Predicate) (string, error) {
	switch p := p.(type) {
	case nil:
		return "TRUE", nil
	case Eq:
		if err := checkField(p.Field); err != nil {
			return "", err
		}
		return fmt.Sprintf("(doc ->> %s::text) = %s::text", b.arg(p.Field), b.arg(p.Value)), nil
	case Contains:
		if err := checkField(p.Field); err != nil {
			return "", err
		}
		return fmt.Sprintf("(doc ->> %s::text) ILIKE ('%%' || %s::text || '%%')",
			b.arg(p.Field), b.arg(escapeLike(p.Substr))), nil
	case Or:
		return b.join(p, " OR ", "FALSE")
	case And:
		return b.join(p, " AND ", "TRUE")
	default:
		return "", fmt.Errorf("store: unsupported predicate %T", p)
	}
}

func (b *sqlBuilder) join(ps []Predicate, sep, empty string) (string, error) {
	if len(ps) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(ps))
	for _, q := range ps {
		s, err := b.where(q)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// escapeLike stops user input from injecting LIKE wildcards.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func selectQuery(table string, where Predicate, opts FindOptions) (string, []any, error) {
	b := &sqlBuilder{}
	cond, err := b.where(where)
	if err != nil {
		return "", nil, err
	}
	order := "ASC"
	if opts.Newest {
		order = "DESC"
	}
	q := fmt.Sprintf("SELECT id::text, doc FROM %s WHERE %s ORDER BY seq %s",
		pq.QuoteIdentifier(table), cond, order)
	if opts.Limit > 0 {
		q += " LIMIT " + b.arg(opts.Limit)
	}
	return q, b.args, nil
}

func countQuery(table string, where Predicate) (string, []any, error) {
	b := &sqlBuilder{}
	cond, err := b.where(where)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", pq.QuoteIdentifier(table), cond), b.args, nil
}

func aggregateQuery(table string, agg Aggregation) (string, []any, error) {
	if err := checkAggregation(agg); err != nil {
		return "", nil, err
	}
	b := &sqlBuilder{}
	key := "''"
	if agg.GroupBy != "" {
		key = fmt.Sprintf("COALESCE(doc ->> %s::text, '')", b.arg(agg.GroupBy))
	}
	avg := "0::float8"
	if agg.Average != "" {
		avg = fmt.Sprintf("COALESCE(AVG((doc ->> %s::text)::float8), 0)", b.arg(agg.Average))
	}
	cond, err := b.where(agg.Match)
	if err != nil {
		return "", nil, err
	}
	q := fmt.Sprintf("SELECT %s AS key, %s AS average, count(*) FROM %s WHERE %s GROUP BY 1 ORDER BY 1",
		key, avg, pq.QuoteIdentifier(table), cond)
	return q, b.args, nil
}

func createTableDDL(spec CollectionSpec) []string {
	table := pq.QuoteIdentifier(spec.Name)
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id  UUID PRIMARY KEY,
    seq BIGSERIAL NOT NULL,
    doc JSONB NOT NULL DEFAULT '{}'::jsonb
)`, table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (seq)",
			pq.QuoteIdentifier(spec.Name+"_seq_idx"), table),
	}
	for _, field := range spec.Unique {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s ((doc ->> %s)) WHERE doc ->> %s <> ''",
			pq.QuoteIdentifier(spec.Name+"_"+field+"_key"), table,
			pq.QuoteLiteral(field), pq.QuoteLiteral(field)))
	}
	for _, field := range spec.Indexed {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s ((doc ->> %s))",
			pq.QuoteIdentifier(spec.Name+"_"+field+"_idx"), table, pq.QuoteLiteral(field)))
	}
	return stmts
}
