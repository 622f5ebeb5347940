package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/internal/service"
)

// ==================== 状态定义 ====================

// State 界面状态
type State int

const (
	StateForm       State = iota // 表单编辑
	StateCategories              // 分类选择面板
	StateSubmitting              // 提交中
)

// 表单字段下标
const (
	fieldTitle = iota
	fieldPrice
	fieldDescription
	fieldImage
	fieldCount
)

// ==================== 消息定义 ====================

// categoriesLoadedMsg 已知分类拉取完成
type categoriesLoadedMsg struct {
	categories []model.Category
	err        error
}

// submitFinishedMsg 提交流程结束
type submitFinishedMsg struct {
	status model.StatusMessage
}

// ==================== 模型 ====================

// Model 商品表单界面
// 表单状态的唯一持有者是 service.FormState，界面层只负责输入转发与渲染；
// 网络操作全部以 tea.Cmd 形式在后台执行，完成后以消息恢复，不阻塞输入
type Model struct {
	form        *service.FormState
	listingSvc  *service.ListingService
	categorySvc *service.CategoryService

	state  State
	inputs [fieldCount]textinput.Model

	// 分类面板
	categoryInput textinput.Model
	known         []model.Category
	cursor        int

	loadErr error
	width   int
}

// NewModel 创建界面模型
func NewModel(form *service.FormState, listingSvc *service.ListingService, categorySvc *service.CategoryService) Model {
	m := Model{
		form:        form,
		listingSvc:  listingSvc,
		categorySvc: categorySvc,
		state:       StateForm,
	}

	labels := [fieldCount]string{"Title", "Price", "Description", "Image URL"}
	draft := form.Draft()
	values := [fieldCount]string{draft.Title, draft.Price, draft.Description, draft.Image}

	for i := 0; i < fieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 0
		ti.SetValue(values[i])
		m.inputs[i] = ti
	}
	m.inputs[fieldTitle].Focus()

	ci := textinput.New()
	ci.Placeholder = "New category name"
	m.categoryInput = ci

	return m
}

// Init 启动时拉取已知分类快照
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCategories())
}

// ==================== 命令 ====================

// loadCategories 拉取已知分类
func (m Model) loadCategories() tea.Cmd {
	ctx := m.form.Context()
	svc := m.categorySvc
	return func() tea.Msg {
		categories, err := svc.Known(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// submit 后台执行提交流程，完成后以消息恢复
func (m Model) submit() tea.Cmd {
	form := m.form
	svc := m.listingSvc
	return func() tea.Msg {
		return submitFinishedMsg{status: svc.Submit(form)}
	}
}
