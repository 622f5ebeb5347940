package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ==================== 分类模型 ====================

// Category 市场分类
// 对账时以名称为标识：归一化后首字母大写，比较时忽略大小写
type Category struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

func (*Category) TableName() string {
	return "categories"
}

// NormalizeName 归一化分类名（首字母大写，其余保持原样）
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// SameName 分类名等价判断（忽略大小写）
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ==================== 有序分类集合 ====================

// CategorySet 有序分类集合
// 按归一化名称去重，保留加入顺序；零值可直接使用
type CategorySet struct {
	items []Category
}

// Add 加入分类（名称先归一化）
// 已存在同名分类时返回 false
func (s *CategorySet) Add(c Category) bool {
	c.Name = NormalizeName(c.Name)
	if c.Name == "" || s.Contains(c.Name) {
		return false
	}
	s.items = append(s.items, c)
	return true
}

// Remove 按名称移除（忽略大小写）
func (s *CategorySet) Remove(name string) bool {
	for i, c := range s.items {
		if SameName(c.Name, name) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains 是否已包含该名称（忽略大小写）
func (s *CategorySet) Contains(name string) bool {
	for _, c := range s.items {
		if SameName(c.Name, name) {
			return true
		}
	}
	return false
}

// Items 返回集合内容的副本
func (s *CategorySet) Items() []Category {
	out := make([]Category, len(s.items))
	copy(out, s.items)
	return out
}

// Names 按加入顺序返回全部名称
func (s *CategorySet) Names() []string {
	names := make([]string, len(s.items))
	for i, c := range s.items {
		names[i] = c.Name
	}
	return names
}

// Len 集合大小
func (s *CategorySet) Len() int {
	return len(s.items)
}
