package inactivity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/kv"
)

// ActivityStore persists the last activity timestamp.
type ActivityStore interface {
	// LastActivity returns the zero time when nothing is stored.
	LastActivity(ctx context.Context) (time.Time, error)
	SetLastActivity(ctx context.Context, t time.Time) error
}

// KVActivityStore keeps the timestamp under one key as epoch milliseconds
// in decimal.
type KVActivityStore struct {
	store kv.Store
	key   string
}

func NewKVActivityStore(store kv.Store, key string) *KVActivityStore {
	return &KVActivityStore{store: store, key: key}
}

func (s *KVActivityStore) LastActivity(ctx context.Context) (time.Time, error) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		return time.Time{}, err
	}
	if len(raw) == 0 {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", s.key, err)
	}
	return time.UnixMilli(ms), nil
}

func (s *KVActivityStore) SetLastActivity(ctx context.Context, t time.Time) error {
	return s.store.Set(ctx, s.key, []byte(strconv.FormatInt(t.UnixMilli(), 10)))
}
