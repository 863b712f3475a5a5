package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const table = "kv_store"

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewKVRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "repository.postgres.Get"

	q := r.sb.
		Select("value").
		From(table).
		Where(sq.Eq{"key": key})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	var value string
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	return value, true, nil
}

func (r *repository) Set(ctx context.Context, key, value string) error {
	const op = "repository.postgres.Set"

	q := r.sb.
		Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, key string) error {
	const op = "repository.postgres.Remove"

	q := r.sb.
		Delete(table).
		Where(sq.Eq{"key": key})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
