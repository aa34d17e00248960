package models

import "time"

// Manifest is one vehicle trip's passenger roster record.
type Manifest struct {
	ID               int64     `json:"id"`
	ManifestCode     string    `json:"manifestCode"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	PlateNumber      string    `json:"plateNumber"`
	DriverName       string    `json:"driverName"`
	DriverPhone      string    `json:"driverPhone"`
	Capacity         int       `json:"capacity"`
	IsLocked         bool      `json:"isLocked"`
	ComplianceStatus string    `json:"complianceStatus,omitempty"`
	AgentID          int64     `json:"agentId"`
	ParkID           int64     `json:"parkId"`
	CreatedAt        time.Time `json:"createdAt"`

	// PassengerCount is filled on list/detail reads, not stored.
	PassengerCount int `json:"passengerCount"`
}

// ManifestPreview is the validate-plate response: enough for the passenger
// self-registration form, plus a non-reserving next-seat hint.
type ManifestPreview struct {
	ID                int64  `json:"id"`
	ManifestCode      string `json:"manifestCode"`
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	DriverName        string `json:"driverName"`
	Capacity          int    `json:"capacity"`
	CurrentPassengers int    `json:"currentPassengers"`
	NextSeatNumber    int    `json:"nextSeatNumber"`
}

// ComplianceRow is one line of the admin compliance report.
type ComplianceRow struct {
	ManifestID     int64  `json:"manifestId"`
	ManifestCode   string `json:"manifestCode"`
	ParkName       string `json:"parkName"`
	AgentName      string `json:"agentName"`
	Capacity       int    `json:"capacity"`
	PassengerCount int    `json:"passengerCount"`
	IsLocked       bool   `json:"isLocked"`
	Status         string `json:"status"`
}
