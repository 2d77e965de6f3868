package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanningRoute is a processing stage catalog entry.
type PlanningRoute struct {
	ID                string          `json:"id" gorm:"primaryKey;size:36"`
	PlanningRouteName string          `json:"planning_route_name" gorm:"size:50;uniqueIndex;not null"`
	PlanningRouteType string          `json:"planning_route_type" gorm:"size:20;not null;default:dyeing"`
	CostPerMeter      decimal.Decimal `json:"cost_per_meter" gorm:"type:decimal(15,2);not null"`
	LeadTimeDays      int             `json:"lead_time_days" gorm:"not null;default:0"`
	CreatedBy         string          `json:"created_by" gorm:"size:36"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (PlanningRoute) TableName() string {
	return "planning_routes"
}
