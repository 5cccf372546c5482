// File: database/repository/points/firestore.go
package pointsRepo

import (
	"context"
	"sync"

	"studiobook/models"
	"studiobook/utils"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const pointsCollection = "points"

type firestorePointsRepo struct {
	client *firestore.Client
}

// NewFirestorePointsRepo constructs a PointsRepository over the shared
// Firestore client.
func NewFirestorePointsRepo() PointsRepository {
	return &firestorePointsRepo{client: utils.GetFirestoreClient()}
}

func (r *firestorePointsRepo) Get(ctx context.Context, userID string) (models.PointBalance, error) {
	snap, err := r.client.Collection(pointsCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.PointBalance{}, nil
	}
	if err != nil {
		return models.PointBalance{}, err
	}
	var balance models.PointBalance
	if err := snap.DataTo(&balance); err != nil {
		return models.PointBalance{}, err
	}
	return balance, nil
}

func (r *firestorePointsRepo) Watch(ctx context.Context, userID string) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &firestorePointsSub{
		cancel:  cancel,
		updates: make(chan models.PointBalance, 1),
	}

	snaps := r.client.Collection(pointsCollection).Doc(userID).Snapshots(subCtx)

	go func() {
		defer close(sub.updates)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if subCtx.Err() == nil {
					sub.setErr(err)
				}
				return
			}
			var balance models.PointBalance
			if snap.Exists() {
				if err := snap.DataTo(&balance); err != nil {
					zap.L().Warn("points: dropping malformed snapshot",
						zap.String("userId", userID), zap.Error(err))
					continue
				}
			}
			select {
			case sub.updates <- balance:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}

type firestorePointsSub struct {
	cancel  context.CancelFunc
	updates chan models.PointBalance

	mu  sync.Mutex
	err error
}

func (s *firestorePointsSub) Updates() <-chan models.PointBalance { return s.updates }

func (s *firestorePointsSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *firestorePointsSub) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *firestorePointsSub) Unsubscribe() { s.cancel() }
