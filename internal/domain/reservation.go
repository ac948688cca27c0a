package domain

import "time"

// Reservation is one persisted lab-seat booking.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    UserID    `json:"userID"`
	Lab       string    `json:"lab"`
	Seat      int       `json:"seat"`
	SlotStart time.Time `json:"slotStart"`
	SlotEnd   time.Time `json:"slotEnd"`
	CreatedAt time.Time `json:"createdAt"`
}
