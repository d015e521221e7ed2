package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/studysync/internal/db"
	"github.com/alexanderramin/studysync/internal/domain"
)

type SQLitePlanRunRepo struct {
	db db.DBTX
}

func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	consumed, err := json.Marshal(nonNil(run.ConsumedIDs))
	if err != nil {
		return fmt.Errorf("encoding consumed ids: %w", err)
	}
	query := `INSERT INTO plan_runs (id, stage, task_count, review_count, summary, consumed_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		string(run.Stage),
		run.TaskCount,
		run.ReviewCount,
		run.Summary,
		string(consumed),
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

// ListRecent returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (r *SQLitePlanRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, stage, task_count, review_count, summary, consumed_ids, created_at
		FROM plan_runs ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PlanRun
	for rows.Next() {
		var run domain.PlanRun
		var stage, consumed, createdAt string
		if err := rows.Scan(&run.ID, &stage, &run.TaskCount, &run.ReviewCount, &run.Summary, &consumed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning plan run: %w", err)
		}
		run.Stage = domain.StudyStage(stage)
		if err := json.Unmarshal([]byte(consumed), &run.ConsumedIDs); err != nil {
			return nil, fmt.Errorf("decoding consumed ids of run %s: %w", run.ID, err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of run %s: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func (r *SQLitePlanRunRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_runs`); err != nil {
		return fmt.Errorf("clearing plan runs: %w", err)
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
