// File: services/payment/service.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"studiobook/models"
	"studiobook/services/plans"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default lifecycle intervals. Tests shrink these.
const (
	DefaultPollInterval = 3 * time.Second
	DefaultTimeout      = 5 * time.Minute
	DefaultAbandonGrace = 30 * time.Second
)

var (
	// ErrPlanNotFound rejects an attempt for an unknown or inactive plan.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrNotAttemptOwner rejects access to another user's attempt.
	ErrNotAttemptOwner = errors.New("attempt belongs to another user")
)

// Finalizer schedules the out-of-process settlement check that guarantees a
// terminal state even if this process dies mid-attempt.
type Finalizer interface {
	ScheduleFinalize(ctx context.Context, attemptID string, after time.Duration) error
}

// PaymentService runs the purchase handshake: create a hosted checkout, watch
// it until settlement, and guarantee the attempt ends in exactly one of
// SUCCESS or CANCELLED.
type PaymentService interface {
	// Initiate creates a new attempt and its checkout, and starts the watcher.
	Initiate(ctx context.Context, sess models.Session, planCode string) (*models.PaymentAttempt, error)

	// Attempt returns the current state of an attempt the user owns.
	Attempt(ctx context.Context, uid, attemptID string) (*models.PaymentAttempt, error)

	// ReportAbandoned signals that the user closed the checkout window. The
	// watcher waits a short grace period, then runs one final status check
	// before resolving.
	ReportAbandoned(ctx context.Context, uid, attemptID string) error

	// Finalize resolves an attempt that is still pending, called by the
	// scheduled settlement check.
	Finalize(ctx context.Context, attemptID string) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Gateway   Gateway
	Store     AttemptStore
	Plans     plans.PlansService
	Finalizer Finalizer // optional

	PollInterval time.Duration
	Timeout      time.Duration
	AbandonGrace time.Duration

	mu       sync.Mutex
	watchers map[string]*watcher
	closed   bool
	wg       sync.WaitGroup

	// resolveMu serializes in-process terminal writes. The store's conditional
	// write guards against resolvers in other processes.
	resolveMu sync.Mutex
}

type watcher struct {
	abandonOnce sync.Once
	abandon     chan struct{}
	stop        chan struct{}
}

func (s *DefaultPaymentService) pollInterval() time.Duration {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return DefaultPollInterval
}

func (s *DefaultPaymentService) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *DefaultPaymentService) abandonGrace() time.Duration {
	if s.AbandonGrace > 0 {
		return s.AbandonGrace
	}
	return DefaultAbandonGrace
}

func (s *DefaultPaymentService) Initiate(ctx context.Context, sess models.Session, planCode string) (*models.PaymentAttempt, error) {
	plan, err := s.Plans.FindByCode(ctx, planCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan %s: %w", planCode, err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	attempt := models.PaymentAttempt{
		ID:        uuid.NewString(),
		UserID:    sess.UID,
		PlanCode:  plan.Code,
		Price:     plan.Price,
		State:     models.AttemptPending,
		CreatedAt: time.Now().UTC(),
	}

	checkout, err := s.Gateway.CreateCheckout(ctx, attempt.ID, *plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	attempt.CheckoutID = checkout.ID
	attempt.CheckoutURL = checkout.URL

	if err := s.Store.Save(ctx, attempt); err != nil {
		return nil, err
	}

	if s.Finalizer != nil {
		after := s.timeout() + s.abandonGrace() + time.Minute
		if err := s.Finalizer.ScheduleFinalize(ctx, attempt.ID, after); err != nil {
			zap.L().Warn("failed to schedule settlement check", zap.String("attemptId", attempt.ID), zap.Error(err))
		}
	}

	s.startWatcher(attempt)
	return &attempt, nil
}

func (s *DefaultPaymentService) Attempt(ctx context.Context, uid, attemptID string) (*models.PaymentAttempt, error) {
	attempt, err := s.Store.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != uid {
		return nil, ErrNotAttemptOwner
	}
	return &attempt, nil
}

func (s *DefaultPaymentService) ReportAbandoned(ctx context.Context, uid, attemptID string) error {
	attempt, err := s.Store.Get(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt.UserID != uid {
		return ErrNotAttemptOwner
	}
	if attempt.State != models.AttemptPending {
		return nil
	}

	s.mu.Lock()
	w := s.watchers[attemptID]
	s.mu.Unlock()

	if w != nil {
		w.abandonOnce.Do(func() { close(w.abandon) })
		return nil
	}
	// No live watcher (process restarted); resolve directly after the grace.
	go func() {
		time.Sleep(s.abandonGrace())
		if err := s.Finalize(context.Background(), attemptID); err != nil {
			zap.L().Warn("abandon finalize failed", zap.String("attemptId", attemptID), zap.Error(err))
		}
	}()
	return nil
}

// Finalize runs one last status check and forces a terminal state. Attempts
// already resolved are left untouched.
func (s *DefaultPaymentService) Finalize(ctx context.Context, attemptID string) error {
	attempt, err := s.Store.Get(ctx, attemptID)
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			return nil
		}
		return err
	}
	if attempt.State != models.AttemptPending {
		return nil
	}

	status, err := s.Gateway.Status(ctx, attempt.CheckoutID)
	if err != nil {
		zap.L().Warn("settlement check failed, cancelling attempt", zap.String("attemptId", attemptID), zap.Error(err))
		status = models.PaymentFailed
	}

	state := models.AttemptCancelled
	if status == models.PaymentSuccess {
		state = models.AttemptSuccess
	}
	return s.resolve(ctx, attemptID, state)
}

// Close stops all watchers. Pending attempts stay pending; the scheduled
// settlement check resolves them.
func (s *DefaultPaymentService) Close() {
	s.mu.Lock()
	s.closed = true
	for _, w := range s.watchers {
		close(w.stop)
	}
	s.watchers = nil
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *DefaultPaymentService) startWatcher(attempt models.PaymentAttempt) {
	w := &watcher{
		abandon: make(chan struct{}),
		stop:    make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.watchers == nil {
		s.watchers = make(map[string]*watcher)
	}
	s.watchers[attempt.ID] = w
	s.wg.Add(1)
	s.mu.Unlock()

	go s.watch(attempt, w)
}

// watch polls the gateway until the attempt resolves. Every exit path stops
// both timers and the ticker and removes the watcher from the registry.
func (s *DefaultPaymentService) watch(attempt models.PaymentAttempt, w *watcher) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if s.watchers[attempt.ID] == w {
			delete(s.watchers, attempt.ID)
		}
		s.mu.Unlock()
	}()

	ctx := context.Background()
	ticker := time.NewTicker(s.pollInterval())
	defer ticker.Stop()
	timeout := time.NewTimer(s.timeout())
	defer timeout.Stop()

	for {
		select {
		case <-w.stop:
			return

		case <-ticker.C:
			status, err := s.Gateway.Status(ctx, attempt.CheckoutID)
			if err != nil {
				zap.L().Warn("status poll failed", zap.String("attemptId", attempt.ID), zap.Error(err))
				continue
			}
			switch status {
			case models.PaymentSuccess:
				s.mustResolve(ctx, attempt.ID, models.AttemptSuccess)
				return
			case models.PaymentFailed:
				s.mustResolve(ctx, attempt.ID, models.AttemptCancelled)
				return
			}

		case <-timeout.C:
			// Poll window exhausted; one last look before giving up.
			s.finalCheck(ctx, attempt, w)
			return

		case <-w.abandon:
			// Popup closed. The gateway may still be settling, so wait a
			// short grace before the last look.
			grace := time.NewTimer(s.abandonGrace())
			select {
			case <-w.stop:
				grace.Stop()
				return
			case <-grace.C:
			}
			s.finalCheck(ctx, attempt, w)
			return
		}
	}
}

func (s *DefaultPaymentService) finalCheck(ctx context.Context, attempt models.PaymentAttempt, w *watcher) {
	select {
	case <-w.stop:
		return
	default:
	}
	status, err := s.Gateway.Status(ctx, attempt.CheckoutID)
	if err != nil {
		zap.L().Warn("final status check failed, cancelling attempt", zap.String("attemptId", attempt.ID), zap.Error(err))
		status = models.PaymentFailed
	}
	state := models.AttemptCancelled
	if status == models.PaymentSuccess {
		state = models.AttemptSuccess
	}
	s.mustResolve(ctx, attempt.ID, state)
}

// resolve writes a terminal state. The watcher, abandon path, and settlement
// check all pass through here; resolveMu serializes them so two in-process
// resolvers cannot both read a pending attempt, and the store's conditional
// write rejects a late resolver from another process. Exactly one terminal
// write ever lands.
func (s *DefaultPaymentService) resolve(ctx context.Context, attemptID string, state models.AttemptState) error {
	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()

	_, applied, err := s.Store.Resolve(ctx, attemptID, state, time.Now().UTC())
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}
	zap.L().Info("payment attempt resolved",
		zap.String("attemptId", attemptID),
		zap.String("state", string(state)))
	return nil
}

func (s *DefaultPaymentService) mustResolve(ctx context.Context, attemptID string, state models.AttemptState) {
	if err := s.resolve(ctx, attemptID, state); err != nil {
		zap.L().Error("failed to resolve payment attempt", zap.String("attemptId", attemptID), zap.Error(err))
	}
}
