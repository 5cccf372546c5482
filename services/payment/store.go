// File: services/payment/store.go
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studiobook/models"
	"studiobook/utils"

	"github.com/go-redis/redis/v8"
)

// ErrAttemptNotFound reports an unknown or expired attempt id.
var ErrAttemptNotFound = errors.New("payment attempt not found")

// attemptTTL keeps resolved attempts queryable for a day before they expire.
const attemptTTL = 24 * time.Hour

// AttemptStore persists payment attempt state across poll cycles.
type AttemptStore interface {
	Save(ctx context.Context, attempt models.PaymentAttempt) error
	Get(ctx context.Context, id string) (models.PaymentAttempt, error)

	// Resolve transitions a pending attempt to a terminal state. The write is
	// conditional on the attempt still being pending when it lands; a settled
	// attempt is returned unchanged with applied=false.
	Resolve(ctx context.Context, id string, state models.AttemptState, at time.Time) (attempt models.PaymentAttempt, applied bool, err error)
}

type redisAttemptStore struct {
	client *redis.Client
}

// NewAttemptStore builds the Redis-backed store on the payment cache DB.
func NewAttemptStore() AttemptStore {
	return &redisAttemptStore{client: utils.GetPaymentCacheClient()}
}

func attemptKey(id string) string {
	return "paymentAttempt:" + id
}

func (s *redisAttemptStore) Save(ctx context.Context, attempt models.PaymentAttempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to encode attempt %s: %w", attempt.ID, err)
	}
	if err := s.client.Set(ctx, attemptKey(attempt.ID), data, attemptTTL).Err(); err != nil {
		return fmt.Errorf("failed to store attempt %s: %w", attempt.ID, err)
	}
	return nil
}

func (s *redisAttemptStore) Get(ctx context.Context, id string) (models.PaymentAttempt, error) {
	data, err := s.client.Get(ctx, attemptKey(id)).Bytes()
	if err == redis.Nil {
		return models.PaymentAttempt{}, ErrAttemptNotFound
	}
	if err != nil {
		return models.PaymentAttempt{}, fmt.Errorf("failed to read attempt %s: %w", id, err)
	}
	var attempt models.PaymentAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return models.PaymentAttempt{}, fmt.Errorf("failed to decode attempt %s: %w", id, err)
	}
	return attempt, nil
}

func (s *redisAttemptStore) Resolve(ctx context.Context, id string, state models.AttemptState, at time.Time) (models.PaymentAttempt, bool, error) {
	key := attemptKey(id)
	var attempt models.PaymentAttempt
	var applied bool

	// WATCH aborts the transaction when another writer lands between the read
	// and the write, so a settled attempt can never be flipped.
	txn := func(tx *redis.Tx) error {
		applied = false
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrAttemptNotFound
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &attempt); err != nil {
			return fmt.Errorf("failed to decode attempt %s: %w", id, err)
		}
		if attempt.State != models.AttemptPending {
			return nil
		}
		attempt.State = state
		attempt.ResolvedAt = &at
		out, err := json.Marshal(attempt)
		if err != nil {
			return fmt.Errorf("failed to encode attempt %s: %w", id, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, attemptTTL)
			return nil
		})
		if err == nil {
			applied = true
		}
		return err
	}

	for attempts := 0; attempts < 3; attempts++ {
		err := s.client.Watch(ctx, txn, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return models.PaymentAttempt{}, false, fmt.Errorf("failed to resolve attempt %s: %w", id, err)
		}
		return attempt, applied, nil
	}
	return models.PaymentAttempt{}, false, fmt.Errorf("failed to resolve attempt %s: concurrent writes kept aborting the transaction", id)
}
