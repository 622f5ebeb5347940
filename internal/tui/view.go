package tui

import (
	"fmt"
	"strings"

	"github.com/KayTee1/E-commerce/internal/model"
)

// View 渲染界面
func (m Model) View() string {
	var b strings.Builder

	title := "Create listing"
	if m.form.EditingID() != "" {
		title = "Edit listing"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	switch m.state {
	case StateCategories:
		b.WriteString(m.categoriesView())
	default:
		b.WriteString(m.formView())
	}

	b.WriteString(m.statusView())
	b.WriteString(m.footerView())
	return b.String()
}

// ==================== 表单 ====================

func (m Model) formView() string {
	var b strings.Builder

	labels := [fieldCount]string{"Title", "Price", "Description", "Image URL"}
	for i := 0; i < fieldCount; i++ {
		b.WriteString(labelStyle.Render(labels[i] + ": "))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Categories: "))
	draft := m.form.Draft()
	names := draft.Categories.Names()
	if len(names) == 0 {
		b.WriteString(subtleStyle.Render("none selected"))
	} else {
		chips := make([]string, len(names))
		for i, name := range names {
			chips[i] = chipStyle.Render(name)
		}
		b.WriteString(strings.Join(chips, " "))
	}
	b.WriteString("\n")

	if m.state == StateSubmitting {
		b.WriteString("\n" + subtleStyle.Render("Submitting..."))
		b.WriteString("\n")
	}

	return b.String()
}

// ==================== 分类面板 ====================

func (m Model) categoriesView() string {
	var b strings.Builder

	if m.loadErr != nil {
		b.WriteString(dangerStyle.Render("Failed to load categories: " + m.loadErr.Error()))
		b.WriteString("\n\n")
	}

	selected := m.form.Draft().Categories
	for i, c := range m.known {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if selected.Contains(c.Name) {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, c.Name))
	}
	if len(m.known) == 0 {
		b.WriteString(subtleStyle.Render("no known categories yet"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Add new: "))
	b.WriteString(m.categoryInput.View())
	b.WriteString("\n")

	return b.String()
}

// ==================== 状态与页脚 ====================

func (m Model) statusView() string {
	status := m.form.Status()
	if status.Empty() || status.Text == "" {
		return ""
	}

	style := subtleStyle
	switch status.Kind {
	case model.StatusSuccess:
		style = successStyle
	case model.StatusError:
		style = dangerStyle
	}
	return "\n" + style.Render(status.Text) + "\n"
}

func (m Model) footerView() string {
	switch m.state {
	case StateCategories:
		return footerStyle.Render("space: toggle · enter: add new · esc: back")
	case StateSubmitting:
		return footerStyle.Render("ctrl+c: quit")
	default:
		return footerStyle.Render("tab: next field · ctrl+t: categories · ctrl+s: submit · esc: quit")
	}
}
