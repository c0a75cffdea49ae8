package dto

import "time"

type HealthResponse struct {
	Database   bool      `json:"database"`
	Redis      bool      `json:"redis"`
	ServerTime time.Time `json:"server_time"`
}
