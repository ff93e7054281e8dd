package dto

import "github.com/noah-isme/msp-aci-api/internal/models"

// DashboardSnapshot is the combined payload backing the dashboard page.
type DashboardSnapshot struct {
	Stats      models.Stats       `json:"stats"`
	Indicators []models.Indicator `json:"indicators"`
	Associates []models.Associate `json:"associates"`
	Missions   []models.Mission   `json:"missions"`
}
