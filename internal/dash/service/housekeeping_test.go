package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

func TestHousekeeping_Cleanup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, age := range []time.Duration{time.Hour, 40 * 24 * time.Hour} {
		require.NoError(t, record(ctx, st.Activity(), domain.ActivityLog{
			Action:    domain.ActionView,
			Module:    domain.ModuleRoles,
			CreatedAt: now.Add(-age),
		}))
	}
	require.NoError(t, st.ViewStates().UpsertViewState(ctx, domain.ViewState{SessionID: "s", Fingerprint: "f"}))

	hk := NewHousekeepingService(st, slogx.Discard(), time.Hour, 30*24*time.Hour, 12*time.Hour)
	hk.now = func() time.Time { return now }
	hk.Cleanup(ctx)

	require.Len(t, activityFor(t, st, domain.ActivityFilter{}), 1)

	// The view state was written just now, far after the fixed clock.
	_, err := st.ViewStates().GetViewState(ctx, "s")
	require.NoError(t, err)

	hk.now = func() time.Time { return time.Now().Add(13 * time.Hour) }
	hk.Cleanup(ctx)
	_, err = st.ViewStates().GetViewState(ctx, "s")
	require.Error(t, err)
}

func TestHousekeeping_StartStop(t *testing.T) {
	// The store's own goroutines outlive the deferred check.
	st := newTestStore(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hk := NewHousekeepingService(st, slogx.Discard(), 10*time.Millisecond, time.Hour, time.Hour)
	hk.Start()
	time.Sleep(30 * time.Millisecond)
	hk.Stop()
}
