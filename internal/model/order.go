package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单 ====================

// OrderItem 订单行（下单时的商品快照）
type OrderItem struct {
	ListingID string  `json:"listing_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order 结算产生的订单
type Order struct {
	ID        string                         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time                      `json:"created_at"`
	Owner     string                         `gorm:"size:64;index" json:"owner"`
	Total     float64                        `json:"total"`
	Items     datatypes.JSONSlice[OrderItem] `gorm:"type:json" json:"items"`
}

func (*Order) TableName() string {
	return "orders"
}
