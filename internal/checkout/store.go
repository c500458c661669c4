package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/redis"
)

// Store persists checkout sessions keyed by order reference.
type Store interface {
	Get(ctx context.Context, reference string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, reference string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore backs checkout sessions with the shared redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Get(ctx context.Context, reference string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(reference))
	if err != nil {
		if redis.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found").
				WithDetails(map[string]any{"reference": reference})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read checkout session")
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session")
	}
	return &session, nil
}

func (s *redisStore) Save(ctx context.Context, session *Session) error {
	if session == nil || session.Reference == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "session reference required")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout session")
	}
	if err := s.client.Set(ctx, s.client.SessionKey(session.Reference), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write checkout session")
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, reference string) error {
	if err := s.client.Del(ctx, s.client.SessionKey(reference)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete checkout session")
	}
	return nil
}
