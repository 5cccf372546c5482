// File: services/plans/service_test.go
package plans

import (
	"context"
	"testing"
	"time"

	plansRepo "studiobook/database/repository/plans"
	"studiobook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlansRepo struct {
	plans    []models.Plan
	listErr  error
	watchErr error
	sub      *fakeCatalogSub
}

type fakeCatalogSub struct {
	updates chan []models.Plan
}

func (s *fakeCatalogSub) Updates() <-chan []models.Plan { return s.updates }
func (s *fakeCatalogSub) Err() error                    { return nil }
func (s *fakeCatalogSub) Unsubscribe()                  { close(s.updates) }

func (r *fakePlansRepo) ListActive(ctx context.Context) ([]models.Plan, error) {
	return r.plans, r.listErr
}

func (r *fakePlansRepo) WatchActive(ctx context.Context) (plansRepo.Subscription, error) {
	if r.watchErr != nil {
		return nil, r.watchErr
	}
	r.sub = &fakeCatalogSub{updates: make(chan []models.Plan, 4)}
	return r.sub, nil
}

func catalogPlans() []models.Plan {
	return []models.Plan{
		{Code: "FIT1", Category: models.PlanCategoryFitmax, Price: 20000, Active: true},
		{Code: "REF10", Category: models.PlanCategoryReformer, Price: 9000, Active: true},
		{Code: "REF4", Category: models.PlanCategoryReformer, Price: 4000, Active: true},
		{Code: "MAT8", Category: models.PlanCategoryMat, Price: 5000, Active: true},
	}
}

func TestCatalogGroupsAndSorts(t *testing.T) {
	svc := &DefaultPlansService{Repo: &fakePlansRepo{plans: catalogPlans()}}

	groups, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, models.PlanCategoryReformer, groups[0].Category)
	assert.Equal(t, "REF4", groups[0].Plans[0].Code, "cheapest first")
	assert.Equal(t, "REF10", groups[0].Plans[1].Code)
	assert.Equal(t, models.PlanCategoryMat, groups[1].Category)
	assert.Equal(t, models.PlanCategoryFitmax, groups[2].Category)
}

func TestFindByCode(t *testing.T) {
	svc := &DefaultPlansService{Repo: &fakePlansRepo{plans: catalogPlans()}}

	plan, err := svc.FindByCode(context.Background(), "MAT8")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, models.PlanCategoryMat, plan.Category)

	plan, err = svc.FindByCode(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestCatalogServesLiveCache(t *testing.T) {
	repo := &fakePlansRepo{plans: catalogPlans()}
	svc := &DefaultPlansService{Repo: repo}
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Close()

	updated := []models.Plan{{Code: "NEW1", Category: models.PlanCategoryHot, Price: 100, Active: true}}
	repo.sub.updates <- updated

	require.Eventually(t, func() bool {
		groups, err := svc.Catalog(context.Background())
		return err == nil && len(groups) == 1 && groups[0].Plans[0].Code == "NEW1"
	}, time.Second, 5*time.Millisecond)
}
