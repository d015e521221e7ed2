package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studysync/internal/domain"
)

// SlotRepo stores one JSON document per slot key.
type SlotRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, at time.Time) error
	Clear(ctx context.Context) error
}

// PlanRunRepo journals generated plans.
type PlanRunRepo interface {
	Create(ctx context.Context, run *domain.PlanRun) error
	ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error)
	Clear(ctx context.Context) error
}
