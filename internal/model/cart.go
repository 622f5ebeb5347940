package model

import "errors"

// ==================== 购物车 ====================

var ErrEmptyCart = errors.New("cart is empty")

// CartItem 购物车条目
type CartItem struct {
	Listing  Listing `json:"listing"`
	Quantity int     `json:"quantity"`
}

// Cart 购物车
// 仅存在于会话内，结算时转换为订单请求；零值可直接使用
type Cart struct {
	items []CartItem
}

// Add 加入商品，已存在时数量加一
func (c *Cart) Add(l Listing) {
	for i := range c.items {
		if c.items[i].Listing.ID == l.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{Listing: l, Quantity: 1})
}

// Remove 减少商品数量，归零时移除条目
func (c *Cart) Remove(listingID string) bool {
	for i := range c.items {
		if c.items[i].Listing.ID == listingID {
			c.items[i].Quantity--
			if c.items[i].Quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return true
		}
	}
	return false
}

// Items 条目副本
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total 合计金额
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Listing.Price * float64(item.Quantity)
	}
	return total
}

// Len 条目数
func (c *Cart) Len() int {
	return len(c.items)
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.items = nil
}

// ToOrderItems 转换为订单行快照
// 购物车为空时返回 ErrEmptyCart
func (c *Cart) ToOrderItems() ([]OrderItem, error) {
	if len(c.items) == 0 {
		return nil, ErrEmptyCart
	}
	out := make([]OrderItem, len(c.items))
	for i, item := range c.items {
		out[i] = OrderItem{
			ListingID: item.Listing.ID,
			Title:     item.Listing.Title,
			Price:     item.Listing.Price,
			Quantity:  item.Quantity,
		}
	}
	return out, nil
}
