package dto

// ==================== 商品提交 ====================

// ListingPayload 商品提交请求体
// 校验通过后由草稿换算而来：价格转为数值，分类取归一化名称
type ListingPayload struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Owner       string   `json:"owner"`
	Categories  []string `json:"categories"`
}

// CreateCategoryRequest 创建分类请求体
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ==================== 订单 ====================

// OrderPayload 结算请求体
type OrderPayload struct {
	Owner string      `json:"owner"`
	Items []OrderLine `json:"items"`
}

// OrderLine 结算条目
type OrderLine struct {
	ListingID string  `json:"listing_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
