package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"foodbox-be/internal/logger"
	"foodbox-be/internal/user"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyExpiresAt    = "expires_at"
)

var (
	ErrNoSession      = errors.New("no stored session")
	ErrSessionExpired = errors.New("stored session expired")
)

// Keyring is opaque key/value storage for credentials, the shape of a
// device secure store.
type Keyring interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Refresher exchanges a refresh token for a new token pair. Satisfied by
// user.Service.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*user.TokenPair, error)
}

// Identity is what a restored session knows about its user without a
// round trip: the access token claims.
type Identity struct {
	UserID string
	Phone  string
	Role   string
}

// Store keeps a token pair in a keyring and restores a signed-in
// identity across restarts, refreshing expired access tokens.
type Store struct {
	keyring Keyring
	auth    Refresher
}

func NewStore(keyring Keyring, auth Refresher) *Store {
	return &Store{keyring: keyring, auth: auth}
}

func (s *Store) SaveTokens(pair *user.TokenPair) error {
	if err := s.keyring.Set(keyAccessToken, pair.AccessToken); err != nil {
		return err
	}
	if err := s.keyring.Set(keyRefreshToken, pair.RefreshToken); err != nil {
		return err
	}
	return s.keyring.Set(keyExpiresAt, strconv.FormatInt(pair.ExpiresAt, 10))
}

// Tokens returns the stored pair, or ErrNoSession when nothing is saved.
func (s *Store) Tokens() (*user.TokenPair, error) {
	access, err := s.keyring.Get(keyAccessToken)
	if err != nil || access == "" {
		return nil, ErrNoSession
	}
	refresh, _ := s.keyring.Get(keyRefreshToken)
	expiresRaw, _ := s.keyring.Get(keyExpiresAt)
	expiresAt, _ := strconv.ParseInt(expiresRaw, 10, 64)

	return &user.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Store) Clear() {
	s.keyring.Delete(keyAccessToken)
	s.keyring.Delete(keyRefreshToken)
	s.keyring.Delete(keyExpiresAt)
}

// Restore brings a saved session back to life. A still-valid access
// token is decoded directly; an expired one is exchanged through the
// refresher. Any failure wipes the keyring so a broken session cannot
// wedge the sign-in flow.
func (s *Store) Restore(ctx context.Context, now time.Time) (*Identity, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "sessionStore"),
		zap.String("method", "Restore"),
	)

	pair, err := s.Tokens()
	if err != nil {
		return nil, err
	}

	if now.UnixMilli() < pair.ExpiresAt {
		claims, err := user.ParseJWT(pair.AccessToken)
		if err == nil {
			return &Identity{UserID: claims.UserID, Phone: claims.Phone, Role: claims.Role}, nil
		}
		log.Warn("stored access token unreadable", zap.Error(err))
	}

	if pair.RefreshToken == "" {
		s.Clear()
		return nil, ErrSessionExpired
	}

	next, err := s.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		log.Warn("session refresh failed", zap.Error(err))
		s.Clear()
		return nil, ErrSessionExpired
	}
	if err := s.SaveTokens(next); err != nil {
		log.Error("failed to persist refreshed tokens", zap.Error(err))
		return nil, err
	}

	claims, err := user.ParseJWT(next.AccessToken)
	if err != nil {
		s.Clear()
		return nil, ErrSessionExpired
	}

	log.Info("session restored", zap.String("userID", claims.UserID))
	return &Identity{UserID: claims.UserID, Phone: claims.Phone, Role: claims.Role}, nil
}
