package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// HierarchyView is everything the role tree needs for one render.
type HierarchyView struct {
	Forest   *hierarchy.Forest
	Expanded *hierarchy.ExpansionSet
	Zoom     hierarchy.Zoom
	Summary  hierarchy.Summary
}

// HierarchyViewService keeps the expansion set and zoom of each session.
// A stored expansion set is discarded when the role list it was computed
// against has changed; zoom survives.
type HierarchyViewService struct {
	Store store.Store
	Roles *RolesService
}

func (s *HierarchyViewService) Load(ctx context.Context, sessionID string) (HierarchyView, error) {
	forest, err := s.Roles.Hierarchy(ctx)
	if err != nil {
		return HierarchyView{}, err
	}

	v := HierarchyView{
		Forest:  forest,
		Zoom:    hierarchy.DefaultZoom,
		Summary: hierarchy.Summarize(forest.Roles()),
	}

	state, err := s.Store.ViewStates().GetViewState(ctx, sessionID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		v.Expanded = hierarchy.NewExpansionSet(forest)
	case err != nil:
		return HierarchyView{}, err
	default:
		v.Zoom = hierarchy.ClampZoom(state.ZoomPercent)
		if state.Fingerprint == forest.Fingerprint() {
			v.Expanded = hierarchy.ExpansionFrom(state.Expanded)
		} else {
			slogx.FromContext(ctx).Debug("role list changed, resetting expansion",
				"session_id", sessionID)
			v.Expanded = hierarchy.NewExpansionSet(forest)
		}
	}
	return v, nil
}

// Toggle flips one node and reports whether it is now expanded.
func (s *HierarchyViewService) Toggle(ctx context.Context, sessionID string, roleID int64) (bool, error) {
	var expanded bool
	_, err := s.update(ctx, sessionID, func(v *HierarchyView) error {
		expanded = v.Expanded.Toggle(roleID)
		return nil
	})
	return expanded, err
}

func (s *HierarchyViewService) ExpandAll(ctx context.Context, sessionID string) (HierarchyView, error) {
	return s.update(ctx, sessionID, func(v *HierarchyView) error {
		v.Expanded.ExpandAll(v.Forest)
		return nil
	})
}

func (s *HierarchyViewService) CollapseAll(ctx context.Context, sessionID string) (HierarchyView, error) {
	return s.update(ctx, sessionID, func(v *HierarchyView) error {
		v.Expanded.CollapseAll(v.Forest)
		return nil
	})
}

// Zoom applies "in", "out" or "reset".
func (s *HierarchyViewService) Zoom(ctx context.Context, sessionID, action string) (hierarchy.Zoom, error) {
	v, err := s.update(ctx, sessionID, func(v *HierarchyView) error {
		z, err := v.Zoom.Apply(action)
		if err != nil {
			return err
		}
		v.Zoom = z
		return nil
	})
	return v.Zoom, err
}

func (s *HierarchyViewService) update(
	ctx context.Context,
	sessionID string,
	fn func(v *HierarchyView) error,
) (HierarchyView, error) {
	v, err := s.Load(ctx, sessionID)
	if err != nil {
		return HierarchyView{}, err
	}
	if err := fn(&v); err != nil {
		return HierarchyView{}, err
	}

	err = s.Store.ViewStates().UpsertViewState(ctx, domain.ViewState{
		SessionID:   sessionID,
		Fingerprint: v.Forest.Fingerprint(),
		Expanded:    v.Expanded.IDs(),
		ZoomPercent: int(v.Zoom),
	})
	if err != nil {
		return HierarchyView{}, err
	}
	return v, nil
}
