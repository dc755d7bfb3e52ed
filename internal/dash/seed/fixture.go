// Package seed loads roles, users and activity from YAML fixtures.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

//go:embed default.yaml
var defaultFixture []byte

var ErrInvalidFixture = errors.New("seed: invalid fixture")

// Fixture is the YAML document accepted by dash seed.
type Fixture struct {
	Roles    []RoleFixture     `yaml:"roles"`
	Users    []UserFixture     `yaml:"users"`
	Activity []ActivityFixture `yaml:"activity"`
}

// RoleFixture pins an id so parent_id can refer to it. A parent_id that
// names no role is kept as is.
type RoleFixture struct {
	ID          int64               `yaml:"id"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	System      bool                `yaml:"system"`
	ParentID    *int64              `yaml:"parent_id"`
	Permissions map[string][]string `yaml:"permissions"`
}

type UserFixture struct {
	Username    string `yaml:"username"`
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	Role        string `yaml:"role"` // role name
	Status      string `yaml:"status"`
}

// ActivityFixture is dated relative to the time of seeding.
type ActivityFixture struct {
	Username string        `yaml:"username"`
	Action   string        `yaml:"action"`
	Module   string        `yaml:"module"`
	Target   string        `yaml:"target"`
	Status   string        `yaml:"status"`
	Details  string        `yaml:"details"`
	IP       string        `yaml:"ip"`
	Ago      time.Duration `yaml:"ago"`
}

// Default returns the embedded demo fixture.
func Default() (Fixture, error) {
	return Parse(bytes.NewReader(defaultFixture))
}

// Load reads a fixture file.
func Load(path string) (Fixture, error) {
	f, err := os.Open(path) //nolint:gosec // operator supplied path
	if err != nil {
		return Fixture{}, err
	}
	defer f.Close()

	fx, err := Parse(f)
	if err != nil {
		return Fixture{}, fmt.Errorf("%s: %w", path, err)
	}
	return fx, nil
}

// Parse decodes and validates a fixture. Unknown fields are rejected.
func Parse(r io.Reader) (Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	if err := fx.Validate(); err != nil {
		return Fixture{}, err
	}
	return fx, nil
}

// Validate checks references inside the document. Parent ids are not
// checked, a dangling parent is how orphans are described.
func (fx Fixture) Validate() error {
	ids := make(map[int64]bool, len(fx.Roles))
	names := make(map[string]bool, len(fx.Roles))
	for i, r := range fx.Roles {
		switch {
		case r.Name == "":
			return fmt.Errorf("%w: role %d has no name", ErrInvalidFixture, i)
		case names[r.Name]:
			return fmt.Errorf("%w: role name %q repeated", ErrInvalidFixture, r.Name)
		case r.ID < 0:
			return fmt.Errorf("%w: role %q has a negative id", ErrInvalidFixture, r.Name)
		case r.ID != 0 && ids[r.ID]:
			return fmt.Errorf("%w: role id %d repeated", ErrInvalidFixture, r.ID)
		}
		names[r.Name] = true
		if r.ID != 0 {
			ids[r.ID] = true
		}
	}

	users := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		switch {
		case u.Username == "":
			return fmt.Errorf("%w: user without username", ErrInvalidFixture)
		case users[u.Username]:
			return fmt.Errorf("%w: username %q repeated", ErrInvalidFixture, u.Username)
		case u.Role == "":
			return fmt.Errorf("%w: user %q has no role", ErrInvalidFixture, u.Username)
		}
		if u.Status != "" {
			if _, err := domain.ParseUserStatus(u.Status); err != nil {
				return fmt.Errorf("%w: user %q: %v", ErrInvalidFixture, u.Username, err)
			}
		}
		users[u.Username] = true
	}

	for i, a := range fx.Activity {
		if _, err := a.entry(time.Time{}); err != nil {
			return fmt.Errorf("%w: activity %d: %v", ErrInvalidFixture, i, err)
		}
	}
	return nil
}

func (a ActivityFixture) entry(now time.Time) (domain.ActivityLog, error) {
	action, err := domain.ParseActivityAction(a.Action)
	if err != nil {
		return domain.ActivityLog{}, err
	}
	module, err := domain.ParseModule(a.Module)
	if err != nil {
		return domain.ActivityLog{}, err
	}
	status := domain.StatusSuccess
	if a.Status != "" {
		if status, err = domain.ParseActivityStatus(a.Status); err != nil {
			return domain.ActivityLog{}, err
		}
	}
	return domain.ActivityLog{
		Username:  a.Username,
		Action:    action,
		Module:    module,
		Target:    a.Target,
		Status:    status,
		IPAddress: a.IP,
		Details:   a.Details,
		CreatedAt: now.Add(-a.Ago),
	}, nil
}
