package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// payments and prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// ArticleImage is one picture attached to an article.
type ArticleImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// Article is a manufacturable product design.
type Article struct {
	ID                      string                           `json:"id" gorm:"primaryKey;size:36"`
	ArticleNo               string                           `json:"article_no" gorm:"size:50;uniqueIndex;not null"`
	ArticleName             string                           `json:"article_name" gorm:"size:100;not null"`
	ArticleDescription      string                           `json:"article_description" gorm:"size:500"`
	CategoryID              string                           `json:"category_id" gorm:"size:36;not null;index"`
	FabricType              string                           `json:"fabric_type" gorm:"size:20;not null"`      // stitch/unstitch
	MeasurementType         string                           `json:"measurement_type" gorm:"size:20;not null"` // meter/piece
	Status                  string                           `json:"status" gorm:"size:20;not null;default:raw;index"`
	ActiveStatus            bool                             `json:"active_status" gorm:"not null;default:true"`
	TotalQuantity           int                              `json:"total_quantity" gorm:"not null;default:0"`
	TotalStoresAssigned     int                              `json:"total_stores_assigned" gorm:"not null;default:0"`
	TotalQuantityDispatched int                              `json:"total_quantity_dispatched" gorm:"not null;default:0"`
	Price                   decimal.Decimal                  `json:"price" gorm:"type:decimal(15,2);not null"`
	DesignerName            string                           `json:"designer_name" gorm:"size:100"`
	ArticleImages           datatypes.JSONSlice[ArticleImage] `json:"article_images"`
	CreatedBy               string                           `json:"created_by" gorm:"size:36;index"`
	CreatedAt               time.Time                        `json:"created_at"`
	UpdatedAt               time.Time                        `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Article) TableName() string {
	return "articles"
}

// HasPrimaryImage reports whether one of the images is flagged primary.
func (a *Article) HasPrimaryImage() bool {
	for _, img := range a.ArticleImages {
		if img.IsPrimary {
			return true
		}
	}
	return false
}
