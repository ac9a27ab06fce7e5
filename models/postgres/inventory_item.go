package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'InventoryItem' is one item in a user's closet: a purchased product,
 * a collectible or a reward. At most one item is equipped per slot.
 */
type InventoryItem struct {
	ID              uint           `gorm:"primaryKey"`
	UserID          uint           `gorm:"not null;index:idx_inventory_items_user"`
	ProductID       *uint          ``
	ItemType        string         `gorm:"size:30;not null"`
	ItemName        string         `gorm:"size:150;not null"`
	ItemDescription string         `gorm:"size:500"`
	ItemImageURL    string         `gorm:"size:255"`
	Rarity          string         `gorm:"size:20"`
	Equipped        bool           `gorm:"default:false"`
	EquippedSlot    string         `gorm:"size:30"`
	EarnedFrom      string         `gorm:"size:30"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	AcquiredAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}
