// File: services/points/service.go
package points

import (
	"context"

	pointsRepo "studiobook/database/repository/points"
	"studiobook/models"

	"go.uber.org/zap"
)

// PointsService exposes the user's point balance. Balances are mutated only by
// the server-side booking procedure; this service never writes.
type PointsService interface {
	// Balance returns the current balance. Read failures degrade to the zero
	// balance, which renders as "no points" rather than an error page.
	Balance(ctx context.Context, uid string) models.PointBalance

	// Watch opens a live subscription to the balance document.
	Watch(ctx context.Context, uid string) (pointsRepo.Subscription, error)
}

// DefaultPointsService is the production implementation.
type DefaultPointsService struct {
	Repo pointsRepo.PointsRepository
}

func (s *DefaultPointsService) Balance(ctx context.Context, uid string) models.PointBalance {
	balance, err := s.Repo.Get(ctx, uid)
	if err != nil {
		zap.L().Warn("points read failed, returning zero balance", zap.String("uid", uid), zap.Error(err))
		return models.PointBalance{}
	}
	return balance
}

func (s *DefaultPointsService) Watch(ctx context.Context, uid string) (pointsRepo.Subscription, error) {
	return s.Repo.Watch(ctx, uid)
}
