package postgres

import (
	"time"
)

// 'Subscriber' is one newsletter signup, kept separate from User so
// people can subscribe without an account.
type Subscriber struct {
	ID         uint      `gorm:"primaryKey"`
	Email      string    `gorm:"size:100;not null;uniqueIndex"`
	Source     string    `gorm:"size:30"`
	Subscribed bool      `gorm:"default:true"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
