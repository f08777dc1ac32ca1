package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopfront/internal/storage"

	"github.com/rs/zerolog"
)

// Theme names.
const (
	ThemeLight = "light-theme"
	ThemeDark  = "dark-theme"
)

// Store holds user preferences in durable storage. Reads are safely
// defaulted: an absent or unreadable theme key yields the light theme.
type Store struct {
	kv     storage.KV
	logger zerolog.Logger
}

// NewStore creates a preference store backed by kv.
func NewStore(kv storage.KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("component", "prefs").Logger(),
	}
}

// Theme returns the active theme name, defaulting to the light theme.
func (s *Store) Theme(ctx context.Context) string {
	data, err := s.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to read theme, using default")
		}
		return ThemeLight
	}

	theme := strings.TrimSpace(string(data))
	switch theme {
	case ThemeLight, ThemeDark:
		return theme
	default:
		s.logger.Warn().Str("theme", theme).Msg("unknown theme in storage, using default")
		return ThemeLight
	}
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme: %s", theme)
	}

	if err := s.kv.Set(ctx, storage.KeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}

	s.logger.Debug().Str("theme", theme).Msg("theme updated")
	return nil
}

// ToggleTheme flips between light and dark and persists the result.
func (s *Store) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if s.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}

	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
