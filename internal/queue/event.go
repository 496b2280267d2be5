// Package queue defines message payloads exchanged over the message broker.
package queue

// RentalCreatedEvent is published after a booking is successfully
// persisted. It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type RentalCreatedEvent struct {
	RentalID        uint64 `json:"rental_id"`
	UserID          uint64 `json:"user_id"`
	BikeID          uint64 `json:"bike_id"`
	BikeBrand       string `json:"bike_brand"`
	BikeModel       string `json:"bike_model"`
	PickupAt        string `json:"pickup_at"`
	DropoffAt       string `json:"dropoff_at"`
	PickupLocation  string `json:"pickup_location,omitempty"`
	DropoffLocation string `json:"dropoff_location,omitempty"`
	TotalPriceCents int64  `json:"total_price_cents"`
	CreatedAt       string `json:"created_at"`
}
