package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type drillRepo struct {
	db *sql.DB
}

var drillColumns = []string{
	"id", "game_id", "mode", "theme", "position", "goal", "solution",
	"difficulty", "explanation", "played_move", "ply", "created_at",
}

func (r *drillRepo) Save(ctx context.Context, d DrillRecord) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	solution, err := json.Marshal(d.Solution)
	if err != nil {
		return fmt.Errorf("marshal solution: %w", err)
	}

	query, args := builder().Insert("drills").
		Columns(drillColumns...).
		Values(
			d.ID, d.GameID, d.Mode, d.Theme, d.Position, d.Goal, string(solution),
			d.Difficulty, d.Explanation, d.PlayedMove, d.Ply, d.CreatedAt.UnixMilli(),
		).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save drill %s: %w", d.ID, err)
	}
	return nil
}

func (r *drillRepo) Get(ctx context.Context, id string) (*DrillRecord, error) {
	query, args := builder().Select(drillColumns...).
		From(entsql.Table("drills")).
		Where(entsql.EQ("id", id)).
		Query()
	d, err := scanDrill(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get drill %s: %w", id, err)
	}
	return d, nil
}

func (r *drillRepo) Recent(ctx context.Context, limit int) ([]DrillRecord, error) {
	sel := builder().Select(drillColumns...).
		From(entsql.Table("drills")).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query drills: %w", err)
	}
	defer rows.Close()

	var out []DrillRecord
	for rows.Next() {
		d, err := scanDrill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drill: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drills: %w", err)
	}
	return out, nil
}

func scanDrill(row rowScanner) (*DrillRecord, error) {
	var (
		d        DrillRecord
		solution string
		ts       int64
	)
	if err := row.Scan(
		&d.ID, &d.GameID, &d.Mode, &d.Theme, &d.Position, &d.Goal, &solution,
		&d.Difficulty, &d.Explanation, &d.PlayedMove, &d.Ply, &ts,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(solution), &d.Solution); err != nil {
		return nil, fmt.Errorf("unmarshal solution: %w", err)
	}
	d.CreatedAt = time.UnixMilli(ts)
	return &d, nil
}
