package models

import "time"

// Park is a motor park operating manifests.
type Park struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	DefaultOrigin string    `json:"defaultOrigin"`
	CreatedAt     time.Time `json:"createdAt"`
}
