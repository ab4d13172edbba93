// Package stockrepo provides persistence for inventory pool levels. Each row
// tracks how many units of a variant a hub can still sell from one pool;
// completion decrements the pool and cancellation restores it.
package stockrepo

import (
	"github.com/google/uuid"
)

// StockLevelDTO represents one inventory pool row. The key is the variant,
// the hub selling it and the pool the units come from, so a hub override
// never collides with the producer's catalog stock.
type StockLevelDTO struct {
	VariantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	HubID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Pool      string    `gorm:"type:varchar(32);primaryKey"`
	OnHand    int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for stock levels.
func (StockLevelDTO) TableName() string {
	return "stock_levels"
}
