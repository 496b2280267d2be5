package model

import "time"

// Location is a named pickup/dropoff point. Rows in the `locations`
// table are created by admins and treated as immutable afterwards.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – display name of the location.
//  Address – street address free text.
//  City    – city name.
//  State   – state or province.
//  ZipCode – postal code.
type Location struct {
    ID        uint64    // locations.id
    Name      string    // locations.name
    Address   string    // locations.address
    City      string    // locations.city
    State     string    // locations.state
    ZipCode   string    // locations.zip_code
    CreatedAt time.Time // locations.created_at
}
