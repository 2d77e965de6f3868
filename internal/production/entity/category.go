package entity

import "time"

// Category groups articles by fabric (lawn, cotton, ...) and season.
type Category struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	CategoryName   string    `json:"category_name" gorm:"size:100;uniqueIndex;not null"`
	CategorySeason string    `json:"category_season" gorm:"size:20;not null;default:Summer"`
	CreatedBy      string    `json:"created_by" gorm:"size:36"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
