// File: database/repository/analytics/interface.go
package analyticsRepo

import (
	"context"

	"studiobook/models"
)

// AnalyticsRepository persists fire-and-forget client telemetry events.
type AnalyticsRepository interface {
	Insert(ctx context.Context, event models.AnalyticsEvent) error
}
