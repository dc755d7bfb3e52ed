package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/idx"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// Actor is who performed an operation, taken from the session.
type Actor struct {
	UserID    string
	Username  string
	IPAddress string
}

type ActivityService struct {
	Store store.Store
}

// Record stores an entry, filling in the id and timestamp when unset.
func (s *ActivityService) Record(ctx context.Context, a domain.ActivityLog) error {
	return record(ctx, s.Store.Activity(), a)
}

// List returns entries matching f, newest first.
func (s *ActivityService) List(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	f.Limit = clampLimit(f.Limit)
	return s.Store.Activity().ListActivity(ctx, f)
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultActivityLimit
	case n > MaxActivityLimit:
		return MaxActivityLimit
	default:
		return n
	}
}

func record(ctx context.Context, repo store.Activity, a domain.ActivityLog) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.ID == "" {
		a.ID = idx.NewAt(a.CreatedAt).String()
	}
	if a.Status == "" {
		a.Status = domain.StatusSuccess
	}
	return repo.CreateActivity(ctx, a)
}

func entry(actor Actor, action domain.ActivityAction, module domain.Module, target string) domain.ActivityLog {
	return domain.ActivityLog{
		UserID:    actor.UserID,
		Username:  actor.Username,
		IPAddress: actor.IPAddress,
		Action:    action,
		Module:    module,
		Target:    target,
		Status:    domain.StatusSuccess,
	}
}
