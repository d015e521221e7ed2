package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so
// this runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ADD COLUMN has no IF NOT EXISTS in SQLite
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Slot keys. Each holds one JSON document.
const (
	SlotResources   = "resources"
	SlotDailyPlan   = "daily_plan"
	SlotReviewQueue = "review_queue"
	SlotStudyStage  = "study_stage"
)

// AllSlots lists the slot keys in load order.
var AllSlots = []string{SlotResources, SlotDailyPlan, SlotReviewQueue, SlotStudyStage}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS slots (
		key        TEXT PRIMARY KEY
		           CHECK(key IN ('resources','daily_plan','review_queue','study_stage')),
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_runs (
		id           TEXT PRIMARY KEY,
		stage        TEXT NOT NULL CHECK(stage IN ('Foundation','Review','Sprint')),
		task_count   INTEGER NOT NULL DEFAULT 0 CHECK(task_count >= 0),
		review_count INTEGER NOT NULL DEFAULT 0 CHECK(review_count >= 0),
		summary      TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at)`,

	// v2: remember which review items each run consumed
	`ALTER TABLE plan_runs ADD COLUMN consumed_ids TEXT NOT NULL DEFAULT '[]'`,
}
