package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Product' is one shop listing. Prices are integer cents. Metadata
 * holds variant info (sizes, colors) as jsonb.
 */
type Product struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"size:150;not null"`
	Description   string         `gorm:"size:1000"`
	Price         int            `gorm:"not null"`
	OriginalPrice *int           ``
	ImageURL      string         `gorm:"size:255"`
	Category      string         `gorm:"size:50;not null;index:idx_products_category"`
	Subcategory   string         `gorm:"size:50"`
	Brand         string         `gorm:"size:50"`
	SKU           string         `gorm:"size:50;uniqueIndex"`
	Stock         int            `gorm:"default:0"`
	IsDigital     bool           `gorm:"default:false"`
	Metadata      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Featured      bool           `gorm:"default:false;index:idx_products_featured"`
	Active        bool           `gorm:"default:true"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
