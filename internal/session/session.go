// Package session persists the CLI's auth tokens between invocations.
package session

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("session key not found")

// Keys stored under the namespace, e.g. "@swift_app:auth_token".
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyUserID       = "user_id"
)

// DefaultNamespace prefixes every key.
const DefaultNamespace = "@swift_app"

// Store is a small key/value store for session state.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Tokens is what a login leaves behind.
type Tokens struct {
	AuthToken    string
	RefreshToken string
	UserID       string
}

// SaveTokens writes all three token keys.
func SaveTokens(ctx context.Context, s Store, t Tokens) error {
	for key, value := range map[string]string{
		KeyAuthToken:    t.AuthToken,
		KeyRefreshToken: t.RefreshToken,
		KeyUserID:       t.UserID,
	} {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// LoadTokens reads the token keys. Missing keys come back empty.
func LoadTokens(ctx context.Context, s Store) (Tokens, error) {
	var t Tokens
	for key, dst := range map[string]*string{
		KeyAuthToken:    &t.AuthToken,
		KeyRefreshToken: &t.RefreshToken,
		KeyUserID:       &t.UserID,
	} {
		v, err := s.Get(ctx, key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Tokens{}, err
		}
		*dst = v
	}
	return t, nil
}

// ClearTokens removes the token keys.
func ClearTokens(ctx context.Context, s Store) error {
	return s.Delete(ctx, KeyAuthToken, KeyRefreshToken, KeyUserID)
}

func namespaced(ns, key string) string {
	if ns == "" {
		ns = DefaultNamespace
	}
	return strings.TrimSuffix(ns, ":") + ":" + key
}
