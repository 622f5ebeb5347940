package service

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/KayTee1/E-commerce/internal/model"
)

// 任何字段编辑都会清空状态消息
func TestFormState_EditClearsStatus(t *testing.T) {
	edits := []struct {
		name string
		edit func(f *FormState)
	}{
		{"title", func(f *FormState) { f.SetTitle("Bike") }},
		{"price", func(f *FormState) { f.SetPrice("42") }},
		{"description", func(f *FormState) { f.SetDescription("A very nice bike") }},
		{"image", func(f *FormState) { f.SetImage("https://example.com/b.jpg") }},
		{"select", func(f *FormState) { f.SelectCategory(model.Category{Name: "Tools"}) }},
		{"deselect", func(f *FormState) { f.DeselectCategory("Tools") }},
	}

	for _, tc := range edits {
		form := NewFormState(context.Background(), "kay", nil)
		form.ApplyStatus(model.StatusMessage{Text: "Created", Kind: model.StatusSuccess})

		tc.edit(form)
		if got := form.Status(); !got.Empty() {
			t.Errorf("%s: 编辑后状态消息应清空, got %+v", tc.name, got)
		}
		form.Close()
	}
}

func TestFormState_DraftIsCopy(t *testing.T) {
	form := NewFormState(context.Background(), "kay", nil)
	defer form.Close()
	form.SelectCategory(model.Category{Name: "Tools"})

	d := form.Draft()
	d.Categories.Add(model.Category{Name: "Garden"})
	d.Title = "Changed"

	got := form.Draft()
	if got.Title != "" || got.Categories.Len() != 1 {
		t.Errorf("Draft 应返回副本, got %+v", got)
	}
}

// 编辑模式：草稿预填已有商品，价格回填为表单字符串
func TestFormState_EditModePrefill(t *testing.T) {
	listing := &model.Listing{
		ID:          "p1",
		Title:       "Bike",
		Price:       42.5,
		Description: "A very nice bike",
		Image:       "https://example.com/bike.jpg",
		Owner:       "kay",
		Categories:  datatypes.JSONSlice[string]{"Sports", "Outdoor"},
	}
	form := NewEditFormState(context.Background(), listing, nil)
	defer form.Close()

	if form.EditingID() != "p1" {
		t.Errorf("EditingID = %q, want p1", form.EditingID())
	}

	d := form.Draft()
	if d.Title != "Bike" || d.Price != "42.5" || d.Owner != "kay" {
		t.Errorf("预填错误: %+v", d)
	}
	if !d.Categories.Contains("sports") || d.Categories.Len() != 2 {
		t.Errorf("分类预填错误: %v", d.Categories.Names())
	}
}

func TestFormState_CloseDropsLateStatus(t *testing.T) {
	form := NewFormState(context.Background(), "kay", nil)

	if !form.ApplyStatus(model.StatusMessage{Text: "ok", Kind: model.StatusSuccess}) {
		t.Fatal("卸载前回写应成功")
	}

	form.Close()
	if !form.Closed() {
		t.Fatal("Close 后 Closed 应为 true")
	}
	if form.ApplyStatus(model.StatusMessage{Text: "late", Kind: model.StatusError}) {
		t.Error("卸载后回写应被丢弃")
	}
	if got := form.Status(); got.Text != "ok" {
		t.Errorf("迟到结果不应覆盖既有状态, got %+v", got)
	}
}

// 每个表单实例持有独立标识与上下文
func TestFormState_IndependentInstances(t *testing.T) {
	a := NewFormState(context.Background(), "kay", nil)
	b := NewFormState(context.Background(), "kay", nil)
	defer b.Close()

	if a.ID() == b.ID() {
		t.Error("两个表单实例不应共享标识")
	}

	a.Close()
	if b.Closed() {
		t.Error("卸载一个表单不应影响另一个")
	}
}
