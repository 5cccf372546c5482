// File: services/plans/service.go
package plans

import (
	"context"
	"fmt"
	"sort"
	"sync"

	plansRepo "studiobook/database/repository/plans"
	"studiobook/models"

	"go.uber.org/zap"
)

// GroupOrder is the catalog display order.
var GroupOrder = []models.PlanCategory{
	models.PlanCategoryReformer,
	models.PlanCategoryMat,
	models.PlanCategoryHot,
	models.PlanCategoryFitmax,
}

// PlansService serves the purchasable plan catalog.
type PlansService interface {
	// Catalog returns active plans grouped by category.
	Catalog(ctx context.Context) ([]models.PlanGroup, error)

	// FindByCode resolves one active plan, or (nil, nil) when absent.
	FindByCode(ctx context.Context, code string) (*models.Plan, error)
}

// DefaultPlansService keeps a live cache of the active catalog, falling back
// to a direct read while the cache is cold or the subscription is down.
type DefaultPlansService struct {
	Repo plansRepo.PlansRepository

	mu     sync.RWMutex
	cached []models.Plan
	warm   bool
	sub    plansRepo.Subscription
}

// Start opens the catalog subscription. Safe to skip; the service then reads
// through on every call.
func (s *DefaultPlansService) Start(ctx context.Context) error {
	sub, err := s.Repo.WatchActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch plan catalog: %w", err)
	}
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	go func() {
		for plans := range sub.Updates() {
			s.mu.Lock()
			s.cached = plans
			s.warm = true
			s.mu.Unlock()
		}
		if err := sub.Err(); err != nil {
			zap.L().Warn("plan catalog subscription ended, serving direct reads", zap.Error(err))
		}
		s.mu.Lock()
		s.warm = false
		s.mu.Unlock()
	}()
	return nil
}

// Close tears down the catalog subscription.
func (s *DefaultPlansService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

func (s *DefaultPlansService) Catalog(ctx context.Context) ([]models.PlanGroup, error) {
	plans, err := s.activePlans(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[models.PlanCategory][]models.Plan)
	for _, p := range plans {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	var groups []models.PlanGroup
	for _, cat := range GroupOrder {
		inCat := byCategory[cat]
		if len(inCat) == 0 {
			continue
		}
		sort.Slice(inCat, func(i, j int) bool {
			if inCat[i].Price != inCat[j].Price {
				return inCat[i].Price < inCat[j].Price
			}
			return inCat[i].Code < inCat[j].Code
		})
		groups = append(groups, models.PlanGroup{Category: cat, Plans: inCat})
	}
	return groups, nil
}

func (s *DefaultPlansService) FindByCode(ctx context.Context, code string) (*models.Plan, error) {
	plans, err := s.activePlans(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].Code == code {
			p := plans[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *DefaultPlansService) activePlans(ctx context.Context) ([]models.Plan, error) {
	s.mu.RLock()
	if s.warm {
		plans := make([]models.Plan, len(s.cached))
		copy(plans, s.cached)
		s.mu.RUnlock()
		return plans, nil
	}
	s.mu.RUnlock()

	plans, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
