package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 商品 ====================

// Listing 已发布的商品
// 分类以归一化名称数组存储（JSON 列）
type Listing struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Price       float64                     `gorm:"not null" json:"price"`
	Description string                      `gorm:"type:text" json:"description"`
	Image       string                      `gorm:"size:2048" json:"image"`
	Owner       string                      `gorm:"size:64;index" json:"owner"`
	Categories  datatypes.JSONSlice[string] `gorm:"type:json" json:"categories"`
}

func (*Listing) TableName() string {
	return "listings"
}

// HasCategory 商品是否属于某个分类（忽略大小写）
func (l *Listing) HasCategory(name string) bool {
	for _, c := range l.Categories {
		if SameName(c, name) {
			return true
		}
	}
	return false
}

// ==================== 提交结果 ====================

// SubmitResult 商品提交（创建/编辑）的后端回执
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
