package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a transaction can hand out the same repos
// without nesting transactions.
type Store interface {
	Roles() Roles
	Users() Users
	Activity() Activity
	Preferences() Preferences
	ViewStates() ViewStates

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Roles interface {
	// GetRoleByID fetches a role with its derived user count.
	GetRoleByID(ctx context.Context, id int64) (domain.Role, error)

	// GetRoleByName is used by the seeder and bootstrap.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role ordered by id.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a role and returns its id. A non-zero r.ID is kept,
	// which lets fixtures pin ids.
	CreateRole(ctx context.Context, r domain.Role) (int64, error)

	// UpdateRole rewrites name, description, parent and permissions.
	UpdateRole(ctx context.Context, r domain.Role) error

	DeleteRole(ctx context.Context, id int64) error

	// CountChildren counts roles whose parent_id is id.
	CountChildren(ctx context.Context, id int64) (int, error)

	IsEmpty(ctx context.Context) (bool, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns users ordered by username.
	ListUsers(ctx context.Context) ([]domain.User, error)

	UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id string, hash string) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Activity interface {
	CreateActivity(ctx context.Context, a domain.ActivityLog) error

	// ListActivity returns matching entries newest first. The filter limit
	// is applied as given; callers clamp it.
	ListActivity(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error)

	// DeleteActivityBefore removes entries created before t.
	DeleteActivityBefore(ctx context.Context, t time.Time) (int64, error)
}

type Preferences interface {
	// GetPreferences returns ErrNotFound when the user never saved any.
	GetPreferences(ctx context.Context, userID string) (domain.Preferences, error)

	UpsertPreferences(ctx context.Context, p domain.Preferences) error
}

type ViewStates interface {
	GetViewState(ctx context.Context, sessionID string) (domain.ViewState, error)

	UpsertViewState(ctx context.Context, v domain.ViewState) error

	// DeleteViewStatesBefore removes states last updated before t.
	DeleteViewStatesBefore(ctx context.Context, t time.Time) (int64, error)
}
