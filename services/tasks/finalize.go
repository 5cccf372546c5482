// File: services/tasks/finalize.go
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studiobook/config"
	"studiobook/services/payment"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypePaymentFinalize is the delayed settlement check for a payment attempt.
// It fires after the client-side poll window has fully elapsed and forces a
// terminal state on anything still pending.
const TypePaymentFinalize = "payment:finalize"

type paymentFinalizePayload struct {
	AttemptID string `json:"attemptId"`
}

// QueueRedisOpt returns the connection options for the task queue DB.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Client enqueues background tasks. It implements payment.Finalizer.
type Client struct {
	client *asynq.Client
}

func NewClient() *Client {
	return &Client{client: asynq.NewClient(QueueRedisOpt())}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// ScheduleFinalize enqueues the settlement check to run after the given delay.
func (c *Client) ScheduleFinalize(ctx context.Context, attemptID string, after time.Duration) error {
	payload, err := json.Marshal(paymentFinalizePayload{AttemptID: attemptID})
	if err != nil {
		return fmt.Errorf("failed to encode finalize payload: %w", err)
	}
	task := asynq.NewTask(TypePaymentFinalize, payload)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.ProcessIn(after), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue settlement check for %s: %w", attemptID, err)
	}
	return nil
}

// HandlePaymentFinalize builds the worker-side handler.
func HandlePaymentFinalize(svc payment.PaymentService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload paymentFinalizePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("bad finalize payload: %w", err)
		}
		zap.L().Info("running settlement check", zap.String("attemptId", payload.AttemptID))
		return svc.Finalize(ctx, payload.AttemptID)
	}
}
