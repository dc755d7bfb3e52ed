package dashsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListActivity returns audit log entries matching q, newest first.
// Requires: activity:view
func (s *Session) ListActivity(ctx context.Context, q ActivityQuery) (*ListActivityResponse, error) {
	path := "/v1/activity"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil, ScopeActivityView)
	if err != nil {
		return nil, err
	}

	var out ListActivityResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (q ActivityQuery) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("action", q.Action)
	set("status", q.Status)
	set("module", q.Module)
	set("user_id", q.UserID)
	set("q", q.Search)
	if !q.Since.IsZero() {
		v.Set("since", q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		v.Set("until", q.Until.UTC().Format(time.RFC3339))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
