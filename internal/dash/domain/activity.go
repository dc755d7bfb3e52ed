package domain

import (
	"fmt"
	"time"
)

type ActivityAction string

const (
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
	ActionDelete ActivityAction = "delete"
	ActionView   ActivityAction = "view"
	ActionLogin  ActivityAction = "login"
	ActionLogout ActivityAction = "logout"
	ActionExport ActivityAction = "export"
)

// ActivityActions lists every action in display order.
var ActivityActions = []ActivityAction{
	ActionCreate, ActionUpdate, ActionDelete, ActionView, ActionLogin, ActionLogout, ActionExport,
}

func ParseActivityAction(s string) (ActivityAction, error) {
	switch a := ActivityAction(s); a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionView, ActionLogin, ActionLogout, ActionExport:
		return a, nil
	default:
		return "", fmt.Errorf("unknown activity action %q", s)
	}
}

func (a ActivityAction) Label() string {
	switch a {
	case ActionCreate:
		return "Created"
	case ActionUpdate:
		return "Updated"
	case ActionDelete:
		return "Deleted"
	case ActionView:
		return "Viewed"
	case ActionLogin:
		return "Signed in"
	case ActionLogout:
		return "Signed out"
	case ActionExport:
		return "Exported"
	default:
		return string(a)
	}
}

type ActivityStatus string

const (
	StatusSuccess ActivityStatus = "success"
	StatusFailed  ActivityStatus = "failed"
	StatusWarning ActivityStatus = "warning"
)

var ActivityStatuses = []ActivityStatus{StatusSuccess, StatusFailed, StatusWarning}

func ParseActivityStatus(s string) (ActivityStatus, error) {
	switch st := ActivityStatus(s); st {
	case StatusSuccess, StatusFailed, StatusWarning:
		return st, nil
	default:
		return "", fmt.Errorf("unknown activity status %q", s)
	}
}

// Tone maps a status onto the badge colour class used by the UI.
func (s ActivityStatus) Tone() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "danger"
	case StatusWarning:
		return "attention"
	default:
		return "neutral"
	}
}

// Module is the platform area an activity happened in.
type Module string

const (
	ModuleForms         Module = "forms"
	ModuleAnalytics     Module = "analytics"
	ModuleUsers         Module = "users"
	ModuleRoles         Module = "roles"
	ModuleBranding      Module = "branding"
	ModuleNotifications Module = "notifications"
)

var Modules = []Module{
	ModuleForms, ModuleAnalytics, ModuleUsers, ModuleRoles, ModuleBranding, ModuleNotifications,
}

func ParseModule(s string) (Module, error) {
	switch m := Module(s); m {
	case ModuleForms, ModuleAnalytics, ModuleUsers, ModuleRoles, ModuleBranding, ModuleNotifications:
		return m, nil
	default:
		return "", fmt.Errorf("unknown module %q", s)
	}
}

type ActivityLog struct {
	ID        string // ULID, sorts by creation time
	UserID    string
	Username  string
	Action    ActivityAction
	Module    Module
	Target    string
	Status    ActivityStatus
	IPAddress string
	Details   string
	CreatedAt time.Time
}

// ActivityFilter narrows an activity listing. Zero values mean "any".
type ActivityFilter struct {
	Action ActivityAction
	Status ActivityStatus
	Module Module
	UserID string
	Search string
	Since  time.Time
	Until  time.Time
	Limit  int
}
