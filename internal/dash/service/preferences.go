package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/store"
)

var (
	ErrInvalidTheme      = errors.New("invalid_theme")
	ErrInvalidBrandColor = errors.New("invalid_brand_color")
	ErrUnknownPage       = errors.New("unknown_page")
)

type PreferencesService struct {
	Store store.Store
}

// Load returns the saved preferences, or the defaults when there are none.
func (s *PreferencesService) Load(ctx context.Context, userID string) (domain.Preferences, error) {
	p, err := s.Store.Preferences().GetPreferences(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DefaultPreferences(userID), nil
	}
	return p, err
}

// Save validates and stores p. A changed brand colour is recorded in the
// activity log.
func (s *PreferencesService) Save(ctx context.Context, actor Actor, p domain.Preferences) (domain.Preferences, error) {
	if _, err := domain.ParseTheme(string(p.Theme)); err != nil {
		return domain.Preferences{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if !domain.ValidBrandColor(p.BrandColor) {
		return domain.Preferences{}, fmt.Errorf("%w: %q is not #rrggbb", ErrInvalidBrandColor, p.BrandColor)
	}
	for _, key := range p.Favorites {
		if _, ok := domain.FindPage(key); !ok {
			return domain.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownPage, key)
		}
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		prev, err := tx.Preferences().GetPreferences(ctx, p.UserID)
		if errors.Is(err, store.ErrNotFound) {
			prev = domain.DefaultPreferences(p.UserID)
		} else if err != nil {
			return err
		}

		if err := tx.Preferences().UpsertPreferences(ctx, p); err != nil {
			return err
		}

		if prev.BrandColor != p.BrandColor {
			e := entry(actor, domain.ActionUpdate, domain.ModuleBranding, "brand colour")
			e.Details = prev.BrandColor + " -> " + p.BrandColor
			return record(ctx, tx.Activity(), e)
		}
		return nil
	})
	if err != nil {
		return domain.Preferences{}, err
	}
	return s.Load(ctx, p.UserID)
}

// ToggleFavorite pins or unpins a page.
func (s *PreferencesService) ToggleFavorite(ctx context.Context, userID, key string) (domain.Preferences, error) {
	if _, ok := domain.FindPage(key); !ok {
		return domain.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownPage, key)
	}

	p, err := s.Load(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	p.ToggleFavorite(key)

	if err := s.Store.Preferences().UpsertPreferences(ctx, p); err != nil {
		return domain.Preferences{}, err
	}
	return p, nil
}
