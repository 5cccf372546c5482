package models

import "time"

// AnalyticsEvent is a fire-and-forget client telemetry event.
type AnalyticsEvent struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"userId,omitempty" json:"userId,omitempty"`
	Name      string         `bson:"name" json:"name" binding:"required"`
	Page      string         `bson:"page,omitempty" json:"page,omitempty"`
	Props     map[string]any `bson:"props,omitempty" json:"props,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
