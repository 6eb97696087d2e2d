package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/ports"
)

// loadJSON reads key and decodes it into v. found is false for absent keys.
// Undecodable values are reported as domain.ErrStorageCorrupt.
func loadJSON(ctx context.Context, kv ports.KeyValueStore, key string, v any) (found bool, err error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w: %v", key, domain.ErrStorageCorrupt, err)
	}
	return true, nil
}

// saveJSON encodes v and writes it under key as a whole value.
func saveJSON(ctx context.Context, kv ports.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(domain.Notification) {}

func notifierOrDiscard(n ports.Notifier) ports.Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}

func failure(title, description string) domain.Notification {
	return domain.Notification{Kind: domain.NotificationError, Title: title, Description: description}
}

var notSaved = failure("Changes not saved", "Your change is visible now but could not be written to storage.")
