package entity

import "time"

// ActivityLog records one change to a tracked record.
type ActivityLog struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	EntityType string `json:"entity_type" gorm:"size:50;not null;index:idx_activity_entity"` // article_planning/article
	EntityID   string `json:"entity_id" gorm:"size:36;not null;index:idx_activity_entity"`
	EntityCode string `json:"entity_code" gorm:"size:50"`

	Action     string `json:"action" gorm:"size:50;not null"`
	FromStatus string `json:"from_status" gorm:"size:20"`
	ToStatus   string `json:"to_status" gorm:"size:20"`

	Content    string    `json:"content" gorm:"type:text"`
	OperatorID string    `json:"operator_id" gorm:"size:36"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Activity actions
const (
	ActionCreate          = "create"
	ActionUpdate          = "update"
	ActionStatusChange    = "status_change"
	ActionOrderSlipChange = "order_slip_change"
	ActionNormalize       = "normalize"
	ActionDelete          = "delete"
)

// Activity entity types
const (
	EntityTypeArticlePlanning = "article_planning"
	EntityTypeArticle         = "article"
)
