package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type gameRepo struct {
	db *sql.DB
}

var gameColumns = []string{
	"id", "white", "black", "result", "time_class", "event", "pgn", "imported_at",
}

func (r *gameRepo) Add(ctx context.Context, g GameRecord) (bool, error) {
	if g.ImportedAt.IsZero() {
		g.ImportedAt = time.Now()
	}
	query, args := builder().Insert("games").
		Columns(gameColumns...).
		Values(g.ID, g.White, g.Black, g.Result, g.TimeClass, g.Event, g.PGN, g.ImportedAt.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert game %s: %w", g.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert game %s: %w", g.ID, err)
	}
	return n > 0, nil
}

func (r *gameRepo) Get(ctx context.Context, id string) (*GameRecord, error) {
	query, args := builder().Select(gameColumns...).
		From(entsql.Table("games")).
		Where(entsql.EQ("id", id)).
		Query()
	g, err := scanGame(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get game %s: %w", id, err)
	}
	return g, nil
}

func (r *gameRepo) All(ctx context.Context) ([]GameRecord, error) {
	query, args := builder().Select(gameColumns...).
		From(entsql.Table("games")).
		OrderBy("id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var out []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return out, nil
}

func (r *gameRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table("games")).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*GameRecord, error) {
	var (
		g  GameRecord
		ts int64
	)
	if err := row.Scan(&g.ID, &g.White, &g.Black, &g.Result, &g.TimeClass, &g.Event, &g.PGN, &ts); err != nil {
		return nil, err
	}
	g.ImportedAt = time.UnixMilli(ts)
	return &g, nil
}
