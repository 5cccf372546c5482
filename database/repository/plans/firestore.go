// File: database/repository/plans/firestore.go
package plansRepo

import (
	"context"
	"sync"

	"studiobook/models"
	"studiobook/utils"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

const plansCollection = "plans"

type firestorePlansRepo struct {
	client *firestore.Client
}

// NewFirestorePlansRepo constructs a PlansRepository over the shared
// Firestore client.
func NewFirestorePlansRepo() PlansRepository {
	return &firestorePlansRepo{client: utils.GetFirestoreClient()}
}

func (r *firestorePlansRepo) activeQuery() firestore.Query {
	return r.client.Collection(plansCollection).Where("active", "==", true)
}

func (r *firestorePlansRepo) ListActive(ctx context.Context) ([]models.Plan, error) {
	iter := r.activeQuery().Documents(ctx)
	defer iter.Stop()
	return collectPlans(iter)
}

func (r *firestorePlansRepo) WatchActive(ctx context.Context) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &firestorePlansSub{
		cancel:  cancel,
		updates: make(chan []models.Plan, 1),
	}

	snaps := r.activeQuery().Snapshots(subCtx)

	go func() {
		defer close(sub.updates)
		defer snaps.Stop()
		for {
			qs, err := snaps.Next()
			if err != nil {
				if subCtx.Err() == nil {
					sub.setErr(err)
				}
				return
			}
			plans, err := collectPlans(qs.Documents)
			if err != nil {
				zap.L().Warn("plans: dropping malformed snapshot", zap.Error(err))
				continue
			}
			select {
			case sub.updates <- plans:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}

func collectPlans(iter *firestore.DocumentIterator) ([]models.Plan, error) {
	var plans []models.Plan
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p models.Plan
		if err := snap.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = snap.Ref.ID
		plans = append(plans, p)
	}
	return plans, nil
}

type firestorePlansSub struct {
	cancel  context.CancelFunc
	updates chan []models.Plan

	mu  sync.Mutex
	err error
}

func (s *firestorePlansSub) Updates() <-chan []models.Plan { return s.updates }

func (s *firestorePlansSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *firestorePlansSub) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *firestorePlansSub) Unsubscribe() { s.cancel() }
