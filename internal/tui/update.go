package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KayTee1/E-commerce/internal/model"
)

// Update 消息循环
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case categoriesLoadedMsg:
		m.known = msg.categories
		m.loadErr = msg.err
		return m, nil

	case submitFinishedMsg:
		// 状态消息已由编排器回写进表单，这里只退出提交态
		m.state = StateForm
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey 按键处理
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.form.Close()
		return m, tea.Quit
	}

	// 提交中只允许退出，其他输入照常不被阻塞但不触发新提交
	switch m.state {
	case StateForm:
		return m.handleFormKey(msg)
	case StateCategories:
		return m.handleCategoryKey(msg)
	case StateSubmitting:
		return m, nil
	}
	return m, nil
}

// ==================== 表单编辑 ====================

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.form.Close()
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.focusedField() + 1) % fieldCount)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.focusedField() + fieldCount - 1) % fieldCount)
		return m, nil

	case tea.KeyCtrlT:
		// 打开分类面板
		m.state = StateCategories
		m.categoryInput.Focus()
		return m, nil

	case tea.KeyCtrlS:
		m.state = StateSubmitting
		return m, m.submit()
	}

	// 普通输入转发给聚焦字段，并同步进表单状态（编辑即清空状态消息）
	idx := m.focusedField()
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	m.syncField(idx)
	return m, cmd
}

// focusedField 当前聚焦的字段下标
func (m *Model) focusedField() int {
	for i := range m.inputs {
		if m.inputs[i].Focused() {
			return i
		}
	}
	return fieldTitle
}

// focusField 切换聚焦
func (m *Model) focusField(idx int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[idx].Focus()
}

// syncField 输入值写回表单状态
func (m *Model) syncField(idx int) {
	v := m.inputs[idx].Value()
	switch idx {
	case fieldTitle:
		m.form.SetTitle(v)
	case fieldPrice:
		m.form.SetPrice(v)
	case fieldDescription:
		m.form.SetDescription(v)
	case fieldImage:
		m.form.SetImage(v)
	}
}

// ==================== 分类面板 ====================

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// 回到表单
		m.state = StateForm
		m.categoryInput.Blur()
		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.known)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeySpace:
		// 输入框非空时空格属于分类名（如 "Garden tools"）
		if m.categoryInput.Value() != "" {
			break
		}
		// 勾选/取消已知分类
		if m.cursor < len(m.known) {
			c := m.known[m.cursor]
			draft := m.form.Draft()
			if draft.Categories.Contains(c.Name) {
				m.form.DeselectCategory(c.Name)
			} else {
				m.form.SelectCategory(c)
			}
		}
		return m, nil

	case tea.KeyEnter:
		// 输入框里的名字作为新分类加入选中集合（后端未知，提交时对账创建）
		if name := m.categoryInput.Value(); name != "" {
			m.form.SelectCategory(model.Category{Name: name})
			m.categoryInput.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.categoryInput, cmd = m.categoryInput.Update(msg)
	return m, cmd
}
