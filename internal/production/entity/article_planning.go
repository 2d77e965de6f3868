package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticlePlanning assigns one article to one planning route for a timed, paid processing pass.
type ArticlePlanning struct {
	ID               string          `json:"id" gorm:"primaryKey;size:36"`
	ArticleID        string          `json:"article_id" gorm:"size:36;not null;uniqueIndex:idx_planning_article_route"`
	PlanningRouteID  string          `json:"planningRoute_id" gorm:"size:36;not null;uniqueIndex:idx_planning_article_route;index"`
	PlanningName     string          `json:"planningName" gorm:"size:50;not null;index"`
	Status           string          `json:"status" gorm:"size:20;not null;default:Pending;index"` // Pending/In Progress/Completed
	OrderSlip        string          `json:"order_slip" gorm:"size:20;not null;default:Issued"`   // Issued/Received
	TotalPayment     decimal.Decimal `json:"total_payment" gorm:"type:decimal(15,2);not null"`
	ProcessDays      int             `json:"process_days" gorm:"not null"`
	WhenProcessStart time.Time       `json:"when_process_start" gorm:"not null"`
	WhenProcessEnd   time.Time       `json:"when_process_end" gorm:"not null"`
	Late             bool            `json:"late" gorm:"not null"`
	Version          int             `json:"version" gorm:"not null"`
	CreatedBy        string          `json:"created_by" gorm:"size:36"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Article       *Article       `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	PlanningRoute *PlanningRoute `json:"planning_route,omitempty" gorm:"foreignKey:PlanningRouteID"`
}

func (ArticlePlanning) TableName() string {
	return "article_plannings"
}
