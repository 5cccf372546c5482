package models

import "time"

// Booking is a server-authoritative record of one confirmed booking.
type Booking struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	SlotID    string    `firestore:"slotId" json:"slotId"`
	Date      string    `firestore:"date" json:"date"`
	Category  string    `firestore:"category,omitempty" json:"category,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// BookingRequest is the payload sent to the remote booking procedure.
type BookingRequest struct {
	SlotID string `json:"slotId" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

// BookingConfirmation is returned to the client after the remote procedure accepts.
type BookingConfirmation struct {
	SlotID    string `json:"slotId"`
	SlotName  string `json:"slotName"`
	TimeLabel string `json:"timeLabel,omitempty"`
	Date      string `json:"date"`
}
