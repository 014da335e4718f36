package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// Storage keys for the persisted collections. The names are carried over from
// the browser build of AllBall so exported data stays portable between the two.
const (
	KeyPlayers        = "flowtrackPlayers"
	KeyDrills         = "flowtrackDrills"
	KeySessions       = "flowtrackSessions"
	KeyTemplates      = "flowtrackSessionTemplates"
	KeyMode           = "flowtrackMode"
	KeyOnboardingSeen = "flowtrackOnboardingSeen"
	KeyEntitlements   = "flowtrackEntitlements"
)

// StoreError helps distinguish store errors from domain errors.
type StoreError string

func (e StoreError) Error() string { return string(e) }

var (
	// ErrNoValue is returned by Load when nothing was ever saved under a key.
	ErrNoValue = StoreError("no value for key")
)

// Store reads and writes named JSON blobs. There are no transactions and no
// schema versioning: each key holds one whole collection snapshot, and the
// last write wins.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}

// LoadJSON decodes the blob stored under key into T. A missing key or a
// malformed stored value falls back to def: a corrupt store must never be
// fatal at startup, only logged.
func LoadJSON[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNoValue) {
			log.Printf("WARN: store: load %q: %v (falling back to default)", key, err)
		}
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("WARN: store: malformed value under %q: %v (falling back to default)", key, err)
		return def
	}
	return out
}

// SaveJSON encodes value and saves it under key. Write failures are reported
// as warnings and swallowed; the in-memory state remains authoritative for
// the rest of the process lifetime.
func SaveJSON(ctx context.Context, s Store, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("WARN: store: encode %q: %v", key, err)
		return
	}
	if err := s.Save(ctx, key, raw); err != nil {
		log.Printf("WARN: store: save %q: %v", key, err)
	}
}
