package model

import "time"

// Rental records a user's booking of a bike for a time window.
// The total price is computed once at creation time from the bike's
// hourly rate and the window duration; see the ledger package for the
// exact arithmetic. Location references are optional and may be nil.
//
// A rental has exactly two lifecycle states: it exists (active) or it
// has been cancelled, which is a hard delete of the row. There is no
// reschedule operation.
//
// Fields:
//  ID                – primary key identifier.
//  UserID            – owner of the booking.
//  BikeID            – bike being rented.
//  PickupLocationID  – optional pickup point (nullable FK).
//  DropoffLocationID – optional dropoff point (nullable FK).
//  PickupAt          – start of the rental window (UTC).
//  DropoffAt         – end of the rental window, strictly after PickupAt.
//  TotalPriceCents   – computed total in cents, never negative.
type Rental struct {
    ID                uint64    // rentals.id
    UserID            uint64    // rentals.user_id
    BikeID            uint64    // rentals.bike_id
    PickupLocationID  *uint64   // rentals.pickup_location_id (nullable)
    DropoffLocationID *uint64   // rentals.dropoff_location_id (nullable)
    PickupAt          time.Time // rentals.pickup_at
    DropoffAt         time.Time // rentals.dropoff_at
    TotalPriceCents   int64     // rentals.total_price_cents
    CreatedAt         time.Time // rentals.created_at
}
