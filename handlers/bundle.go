package handlers

import (
	analyticsRepo "studiobook/database/repository/analytics"
	"studiobook/services/booking"
	"studiobook/services/payment"
	"studiobook/services/plans"
	"studiobook/services/points"
	"studiobook/services/schedule"
	"studiobook/services/session"
	"studiobook/services/system"
	"studiobook/utils"
)

// HandlerBundle groups all HTTP handlers with their service dependencies.
type HandlerBundle struct {
	Sessions    session.SessionService
	Booking     booking.BookingService
	Schedule    schedule.ScheduleService
	Points      points.PointsService
	Plans       plans.PlansService
	Payments    payment.PaymentService
	Analytics   analyticsRepo.AnalyticsRepository
	Maintenance system.MaintenanceService
	Clock       utils.StudioClock
}
