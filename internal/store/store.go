package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidCollection = errors.New("store: invalid collection")
	ErrInvalidField      = errors.New("store: invalid field name")
)

var fieldName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

type Op string

const (
	OpEq  Op = "="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

type Filter struct {
	Field string
	Op    Op
	Value string
}

type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

type Record struct {
	ID         string    `db:"id" json:"id"`
	Collection string    `db:"collection" json:"collection"`
	Fields     Document  `db:"fields" json:"fields"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Store is an append-only document store. It offers no compare-and-swap.
type Store interface {
	CreateRecord(ctx context.Context, collection string, fields Document) (string, error)
	Find(ctx context.Context, q Query) ([]Record, error)
}

type SQLStore struct {
	db    *sqlx.DB
	newID func() string
	now   func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:    db,
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

func (s *SQLStore) CreateRecord(ctx context.Context, collection string, fields Document) (string, error) {
	if !fieldName.MatchString(collection) {
		return "", ErrInvalidCollection
	}

	id := s.newID()
	query := s.db.Rebind(`
		INSERT INTO records (id, collection, fields, created_at)
		VALUES (?, ?, ?, ?)
	`)

	if _, err := s.db.ExecContext(ctx, query, id, collection, fields, s.now().UTC()); err != nil {
		return "", fmt.Errorf("store: create %s record: %w", collection, err)
	}

	return id, nil
}

func (s *SQLStore) Find(ctx context.Context, q Query) ([]Record, error) {
	if !fieldName.MatchString(q.Collection) {
		return nil, ErrInvalidCollection
	}

	var (
		sb   strings.Builder
		args = []any{q.Collection}
	)
	sb.WriteString(`SELECT id, collection, fields, created_at FROM records WHERE collection = ?`)

	for _, f := range q.Filters {
		expr, err := s.fieldExpr(f.Field)
		if err != nil {
			return nil, err
		}
		switch f.Op {
		case OpEq, OpLt, OpLte, OpGt, OpGte:
		default:
			return nil, fmt.Errorf("store: unsupported operator %q", f.Op)
		}
		sb.WriteString(" AND ")
		sb.WriteString(expr)
		sb.WriteString(" ")
		sb.WriteString(string(f.Op))
		sb.WriteString(" ?")
		args = append(args, f.Value)
	}

	if q.OrderBy != "" {
		expr, err := s.fieldExpr(q.OrderBy)
		if err != nil {
			return nil, err
		}
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s, created_at %s", expr, dir, dir)
	} else {
		sb.WriteString(" ORDER BY created_at ASC")
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	var records []Record
	if err := s.db.SelectContext(ctx, &records, s.db.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("store: find %s records: %w", q.Collection, err)
	}

	return records, nil
}

func (s *SQLStore) fieldExpr(name string) (string, error) {
	if !fieldName.MatchString(name) {
		return "", ErrInvalidField
	}
	if s.db.DriverName() == "sqlite" {
		return fmt.Sprintf("json_extract(fields, '$.%s')", name), nil
	}
	return fmt.Sprintf("fields->>'%s'", name), nil
}
