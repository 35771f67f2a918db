package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix  = "draft:"
	defaultDraftTTL = 15 * time.Minute
)

// RedisDraftStore keeps purchase drafts in redis with a sliding TTL, so an
// abandoned draft disappears on its own.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisDraftOption func(*RedisDraftStore)

func WithDraftTTL(d time.Duration) RedisDraftOption {
	return func(s *RedisDraftStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func NewRedisDraftStore(client *redis.Client, opts ...RedisDraftOption) *RedisDraftStore {
	store := &RedisDraftStore{
		client: client,
		ttl:    defaultDraftTTL,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisDraftStore) Get(ctx context.Context, username string) (*PurchaseDraft, error) {
	val, err := s.client.Get(ctx, draftKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft PurchaseDraft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, draft *PurchaseDraft) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.Username), body, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, draftKey(username)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func draftKey(username string) string {
	return draftKeyPrefix + username
}
