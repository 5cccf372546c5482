// File: services/system/maintenance.go
package system

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maintenanceCacheKey = "maintenanceFlag"

// MaintenanceStatus is the remotely controlled kill switch. When enabled the
// whole app surface is replaced by the maintenance message.
type MaintenanceStatus struct {
	Enabled bool   `firestore:"enabled" json:"enabled"`
	Message string `firestore:"message,omitempty" json:"message,omitempty"`
}

// MaintenanceService reads the maintenance flag.
type MaintenanceService interface {
	Status(ctx context.Context) MaintenanceStatus
}

// DefaultMaintenanceService reads config/maintenance through a short-TTL
// cache so the flag check doesn't hit the document store on every request.
type DefaultMaintenanceService struct {
	Firestore *firestore.Client
	Cache     *redis.Client
	TTL       time.Duration
}

// Status returns the current flag. Failures fail open: an unreadable flag
// never locks users out.
func (s *DefaultMaintenanceService) Status(ctx context.Context) MaintenanceStatus {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, maintenanceCacheKey).Bytes(); err == nil {
			var cached MaintenanceStatus
			if json.Unmarshal(data, &cached) == nil {
				return cached
			}
		}
	}

	var current MaintenanceStatus
	snap, err := s.Firestore.Collection("config").Doc("maintenance").Get(ctx)
	switch {
	case err != nil && status.Code(err) == codes.NotFound:
		// No flag document means not in maintenance.
	case err != nil:
		zap.L().Warn("maintenance flag read failed, assuming disabled", zap.Error(err))
		return MaintenanceStatus{}
	default:
		if err := snap.DataTo(&current); err != nil {
			zap.L().Warn("malformed maintenance flag, assuming disabled", zap.Error(err))
			return MaintenanceStatus{}
		}
	}

	if s.Cache != nil {
		if data, err := json.Marshal(current); err == nil {
			s.Cache.Set(ctx, maintenanceCacheKey, data, s.TTL)
		}
	}
	return current
}
