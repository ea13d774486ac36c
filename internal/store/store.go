// Package store persists agent state: the user's base CV, preferences and
// per-URL tailoring artifacts. Backends share a flat key/value contract so
// the session pipeline stays storage-agnostic.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys. The cvTailorPro_ prefix carries over from earlier releases
// so existing user data keeps working.
const (
	KeyUserCV        = "cvTailorPro_userCV"
	KeyUserCVText    = "cvTailorPro_userCVText"
	KeyPreferences   = "cvTailorPro_preferences"
	KeyAutoTailor    = "ats_autoTailorEnabled"
	KeyTailoredURLs  = "ats_tailored_urls"
	KeyLastDocuments = "ats_lastGeneratedDocuments"
	KeyKeywords      = "ats_extracted_keywords"
)

// ErrNotFound marks a missing key
var ErrNotFound = errors.New("key not found")

// Error represents a storage failure.
type Error struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s %q: %s: %v", e.Op, e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("store %s %q: %s", e.Op, e.Key, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Store is a flat key/value persistence surface.
type Store interface {
	// Get returns the raw value for the key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the value for the key
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
	// Close releases backend resources
	Close() error
}

// GetJSON loads and unmarshals the value at key into out. A missing key
// returns ErrNotFound with out untouched.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: "get", Key: key, Message: "corrupt stored value", Cause: err}
	}
	return nil
}

// SetJSON marshals v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "set", Key: key, Message: "value not serializable", Cause: err}
	}
	return s.Set(ctx, key, data)
}

// MarkTailored records a URL in the tailored-URL set.
func MarkTailored(ctx context.Context, s Store, url string) error {
	urls, err := TailoredURLs(ctx, s)
	if err != nil {
		return err
	}
	for _, u := range urls {
		if u == url {
			return nil
		}
	}
	return SetJSON(ctx, s, KeyTailoredURLs, append(urls, url))
}

// TailoredURLs returns the set of URLs already tailored, empty when unset.
func TailoredURLs(ctx context.Context, s Store) ([]string, error) {
	var urls []string
	if err := GetJSON(ctx, s, KeyTailoredURLs, &urls); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return urls, nil
}

// IsTailored reports whether the URL was already processed.
func IsTailored(ctx context.Context, s Store, url string) (bool, error) {
	urls, err := TailoredURLs(ctx, s)
	if err != nil {
		return false, err
	}
	for _, u := range urls {
		if u == url {
			return true, nil
		}
	}
	return false, nil
}
