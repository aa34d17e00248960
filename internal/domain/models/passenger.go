package models

import "time"

// Passenger occupies exactly one seat on one manifest. Rows are immutable
// once written; the manifest is an append-only audit trail.
type Passenger struct {
	ID             int64     `json:"id"`
	ManifestID     int64     `json:"manifestId"`
	Name           string    `json:"name"`
	NextOfKin      string    `json:"nextOfKin"`
	NextOfKinPhone string    `json:"nextOfKinPhone"`
	SeatNumber     int       `json:"seatNumber"`
	CreatedAt      time.Time `json:"createdAt"`
}
