package models

import "time"

// Agent registers manifests on behalf of a park. Agents authenticate with
// their 4-character code.
type Agent struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	ParkID    int64     `json:"parkId"`
	ParkName  string    `json:"parkName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
