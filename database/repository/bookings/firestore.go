// File: database/repository/bookings/firestore.go
package bookingsRepo

import (
	"context"

	"studiobook/models"
	"studiobook/utils"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const bookingsCollection = "bookings"

type firestoreBookingsRepo struct {
	client *firestore.Client
}

// NewFirestoreBookingsRepo constructs a BookingsRepository over the shared
// Firestore client.
func NewFirestoreBookingsRepo() BookingsRepository {
	return &firestoreBookingsRepo{client: utils.GetFirestoreClient()}
}

func (r *firestoreBookingsRepo) ListByUserAndDate(ctx context.Context, userID, date string) ([]models.Booking, error) {
	q := r.client.Collection(bookingsCollection).
		Where("userId", "==", userID).
		Where("date", "==", date)
	return r.collect(ctx, q)
}

func (r *firestoreBookingsRepo) ListByUserAndRange(ctx context.Context, userID, from, to string) ([]models.Booking, error) {
	q := r.client.Collection(bookingsCollection).
		Where("userId", "==", userID).
		Where("date", ">=", from).
		Where("date", "<=", to).
		OrderBy("date", firestore.Desc)
	return r.collect(ctx, q)
}

func (r *firestoreBookingsRepo) BookedSlotIDs(ctx context.Context, userID, date string) ([]string, error) {
	bookings, err := r.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.SlotID)
	}
	return ids, nil
}

func (r *firestoreBookingsRepo) collect(ctx context.Context, q firestore.Query) ([]models.Booking, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var bookings []models.Booking
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var b models.Booking
		if err := snap.DataTo(&b); err != nil {
			return nil, err
		}
		b.ID = snap.Ref.ID
		bookings = append(bookings, b)
	}
	return bookings, nil
}
