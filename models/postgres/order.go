package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'Order' is one checkout. Payment capture happens in an external
 * processor; we only keep the payment-intent reference the client
 * reports back.
 */
type Order struct {
	ID                    uint           `gorm:"primaryKey"`
	OrderNumber           string         `gorm:"size:50;not null;uniqueIndex"`
	UserID                uint           `gorm:"not null;index"`
	Email                 string         `gorm:"size:100;not null"`
	Status                string         `gorm:"size:20;default:'pending'"`
	Subtotal              int            `gorm:"not null"`
	Tax                   int            `gorm:"default:0"`
	Shipping              int            `gorm:"default:0"`
	Total                 int            `gorm:"not null"`
	StripePaymentIntentID string         `gorm:"size:100"`
	ShippingAddress       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Notes                 string         `gorm:"size:500"`
	CreatedAt             time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt             time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	User  User         `gorm:"foreignKey:UserID"`
	Items []*OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
 * 'OrderItem' snapshots the purchased product and its price at
 * purchase time, so later price edits don't rewrite history.
 */
type OrderItem struct {
	ID              uint           `gorm:"primaryKey"`
	OrderID         uint           `gorm:"not null;index"`
	ProductID       uint           `gorm:"not null"`
	Quantity        int            `gorm:"not null"`
	PriceAtPurchase int            `gorm:"not null"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID"`
	Product Product `gorm:"foreignKey:ProductID"`
}
