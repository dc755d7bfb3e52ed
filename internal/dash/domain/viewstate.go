package domain

import "time"

// ViewState is the persisted hierarchy view of one session: which nodes are
// expanded and the zoom level. Fingerprint identifies the role list the
// expansion set was computed against.
type ViewState struct {
	SessionID   string
	Fingerprint string
	Expanded    []int64
	ZoomPercent int
	UpdatedAt   time.Time
}
