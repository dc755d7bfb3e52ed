package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/internal/dash/store/drivers/sqlite"
	"github.com/aussiebroadwan/dash/pkg/jwtx"
)

var testSecret = []byte(strings.Repeat("k", jwtx.MinSecretLength))

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUserService(t *testing.T, st store.Store) *UserService {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	return &UserService{Store: st, Signer: signer, Issuer: "dash"}
}

func mustCreateRole(t *testing.T, st store.Store, r domain.Role) int64 {
	t.Helper()
	id, err := st.Roles().CreateRole(context.Background(), r)
	require.NoError(t, err)
	return id
}

func activityFor(t *testing.T, st store.Store, f domain.ActivityFilter) []domain.ActivityLog {
	t.Helper()
	out, err := st.Activity().ListActivity(context.Background(), f)
	require.NoError(t, err)
	return out
}

var testActor = Actor{UserID: "01HZX0000000000000000000AA", Username: "admin", IPAddress: "127.0.0.1"}
