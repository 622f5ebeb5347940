package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/KayTee1/E-commerce/internal/model"
)

// ==================== 表单状态 ====================

// FormState 商品表单的状态持有者
// 独占持有 Draft / 已选分类 / 状态消息三元组；任何编辑都会清空状态消息。
// 表单卸载时 Close 取消挂在其上的在途请求，迟到的结果不再回写。
type FormState struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	draft     model.Draft
	status    model.StatusMessage
	known     []model.Category
	editingID string
}

// NewFormState 创建表单（创建模式）
// known 为挂载时拉取的已知分类快照，单次提交流程内只读
func NewFormState(parent context.Context, owner string, known []model.Category) *FormState {
	ctx, cancel := context.WithCancel(parent)
	return &FormState{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		draft:  model.Draft{Owner: owner},
		status: model.StatusMessage{Kind: model.StatusNone},
		known:  known,
	}
}

// NewEditFormState 创建表单（编辑模式），草稿预填已有商品
func NewEditFormState(parent context.Context, listing *model.Listing, known []model.Category) *FormState {
	f := NewFormState(parent, listing.Owner, known)
	f.editingID = listing.ID
	f.draft.Title = listing.Title
	f.draft.Price = formatPrice(listing.Price)
	f.draft.Description = listing.Description
	f.draft.Image = listing.Image
	for _, name := range listing.Categories {
		f.draft.Categories.Add(model.Category{Name: name})
	}
	return f
}

// ID 表单实例标识
func (f *FormState) ID() string {
	return f.id
}

// Context 表单生命周期上下文（在途请求挂在其上）
func (f *FormState) Context() context.Context {
	return f.ctx
}

// Close 卸载表单
func (f *FormState) Close() {
	f.cancel()
}

// Closed 表单是否已卸载
func (f *FormState) Closed() bool {
	return f.ctx.Err() != nil
}

// EditingID 编辑模式下的商品 ID，创建模式为空
func (f *FormState) EditingID() string {
	return f.editingID
}

// ==================== 字段编辑 ====================

// SetTitle 编辑标题
func (f *FormState) SetTitle(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Title = v
	f.clearStatusLocked()
}

// SetPrice 编辑价格
func (f *FormState) SetPrice(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Price = v
	f.clearStatusLocked()
}

// SetDescription 编辑描述
func (f *FormState) SetDescription(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Description = v
	f.clearStatusLocked()
}

// SetImage 编辑图片地址
func (f *FormState) SetImage(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Image = v
	f.clearStatusLocked()
}

// SelectCategory 选中分类（可以是后端未知的新分类）
func (f *FormState) SelectCategory(c model.Category) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearStatusLocked()
	return f.draft.Categories.Add(c)
}

// DeselectCategory 取消选中
func (f *FormState) DeselectCategory(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearStatusLocked()
	return f.draft.Categories.Remove(name)
}

// ==================== 读取 ====================

// Draft 当前草稿的副本
func (f *FormState) Draft() model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

// Known 挂载时的已知分类快照
func (f *FormState) Known() []model.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Category, len(f.known))
	copy(out, f.known)
	return out
}

// Status 当前状态消息
func (f *FormState) Status() model.StatusMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ==================== 状态消息 ====================

// ApplyStatus 回写提交结果
// 表单已卸载时丢弃（迟到结果不作用于已销毁的草稿）
func (f *FormState) ApplyStatus(msg model.StatusMessage) bool {
	if f.Closed() {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = msg
	return true
}

func (f *FormState) clearStatusLocked() {
	f.status = model.StatusMessage{Kind: model.StatusNone}
}

// formatPrice 价格回填为表单字符串
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
