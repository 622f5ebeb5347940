package model

// ==================== 状态消息 ====================

const (
	// 状态消息种类
	StatusNone    = "none"
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusMessage 表单的用户可见反馈
// 生命周期：编辑即清空，提交时设置
type StatusMessage struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// Empty 是否为空消息
func (m StatusMessage) Empty() bool {
	return m.Kind == "" || m.Kind == StatusNone
}

// ==================== 草稿 ====================

// Draft 商品草稿（表单持有的可变数据）
// Price 保留用户输入的原始字符串，是否为数字由校验器判断
type Draft struct {
	Title       string      `json:"title"`
	Price       string      `json:"price"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Owner       string      `json:"owner"`
	Categories  CategorySet `json:"-"`
}

// Clone 草稿副本
// 提交流程使用副本，失败时原草稿不受影响
func (d *Draft) Clone() Draft {
	out := *d
	out.Categories = CategorySet{}
	for _, c := range d.Categories.Items() {
		out.Categories.Add(c)
	}
	return out
}
