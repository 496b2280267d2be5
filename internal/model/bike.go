package model

import "time"

// BikeCategory enumerates the kinds of bikes the catalog rents out.
// The values match the CHECK constraint on the `bikes.category` column.
type BikeCategory string

const (
    CategoryRoad     BikeCategory = "ROAD"
    CategoryMountain BikeCategory = "MOUNTAIN"
    CategoryHybrid   BikeCategory = "HYBRID"
    CategoryElectric BikeCategory = "ELECTRIC"
)

// ValidCategory reports whether s is one of the known bike categories.
func ValidCategory(s string) bool {
    switch BikeCategory(s) {
    case CategoryRoad, CategoryMountain, CategoryHybrid, CategoryElectric:
        return true
    }
    return false
}

// Bike represents a rentable bike as stored in the `bikes` table.
// Prices are kept in integer cents so that rental totals can be
// computed exactly; MileageKmpl is the fuel economy figure shown on
// the detail page and used by the comparison assistant.
//
// Fields:
//  ID                – primary key identifier.
//  Category          – one of the BikeCategory values.
//  Brand             – manufacturer name.
//  Model             – model name.
//  PricePerHourCents – hourly rate in cents, never negative.
//  Available         – advisory availability flag; booking does not check it.
//  Description       – optional free text (nullable).
//  MileageKmpl       – mileage in km per litre, stored as DECIMAL(6,2).
//  ImageURL          – optional image reference (nullable).
type Bike struct {
    ID                uint64       // bikes.id
    Category          BikeCategory // bikes.category
    Brand             string       // bikes.brand
    Model             string       // bikes.model
    PricePerHourCents int64        // bikes.price_per_hour_cents
    Available         bool         // bikes.available
    Description       *string      // bikes.description (nullable)
    MileageKmpl       float64      // bikes.mileage_kmpl
    ImageURL          *string      // bikes.image_url (nullable)
    CreatedAt         time.Time    // bikes.created_at
    UpdatedAt         time.Time    // bikes.updated_at
}
