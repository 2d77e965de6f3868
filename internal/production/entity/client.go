package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a buyer of finished articles.
type Client struct {
	ID              string          `json:"id" gorm:"primaryKey;size:36"`
	ClientName      string          `json:"client_name" gorm:"size:100;not null"`
	ClientEmail     string          `json:"client_email" gorm:"size:200;uniqueIndex;not null"`
	ClientPhone     string          `json:"client_phone" gorm:"size:50"`
	ClientAddress   string          `json:"client_address" gorm:"size:300"`
	ClientCity      string          `json:"client_city" gorm:"size:100"`
	ClientState     string          `json:"client_state" gorm:"size:100"`
	ClientZip       string          `json:"client_zip" gorm:"size:20"`
	ClientCountry   string          `json:"client_country" gorm:"size:100"`
	TotalOrderPlace int             `json:"total_order_place" gorm:"not null;default:0"`
	TotalRevenue    decimal.Decimal `json:"total_revenue" gorm:"type:decimal(15,2);not null;default:0"`
	CreatedBy       string          `json:"created_by" gorm:"size:36"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
