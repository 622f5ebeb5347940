package service

import (
	"context"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/KayTee1/E-commerce/internal/model"
)

// ==================== 校验文案 ====================

// 每条规则对应一条固定文案，与前端提示一一对应
const (
	MsgFillAllFields  = "Please fill in all fields"
	MsgSelectCategory = "Please select at least one category"
	MsgPriceNumber    = "Price must be a number"
	MsgImageURL       = "Image must be a valid image URL"
	MsgDescTooShort   = "Description must be at least 10 characters long"
	MsgDescTooLong    = "Description must be less than 150 characters long"
	MsgTitleCapital   = "Title must start with a capital letter"
	MsgTitleTooLong   = "Title must be less than 20 characters long"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 150
	maxTitleLen       = 20
)

// ==================== 校验错误 ====================

// ValidationError 首条未通过的规则
type ValidationError struct {
	Rule    int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ==================== 校验器 ====================

// ImageProber 图片地址探测接口（pkg/utils.ImageProbe 实现）
type ImageProber interface {
	ProbeImage(ctx context.Context, rawURL string) error
}

// Validator 草稿校验器
// 固定顺序逐条检查，命中即短路；整条路径同步等待完成，
// 图片探测也在返回前解析完毕，不保留跨调用的中间状态
type Validator struct {
	prober ImageProber
	strict bool
}

// NewValidator 创建校验器
// strict 开启后追加描述上限与标题长度规则
func NewValidator(prober ImageProber, strict bool) *Validator {
	return &Validator{prober: prober, strict: strict}
}

// Validate 校验草稿
// 返回 nil 表示可以进入提交；否则返回首条违反规则的 *ValidationError
func (v *Validator) Validate(ctx context.Context, d *model.Draft) error {
	// 规则 1：必填字段
	if d.Title == "" || d.Price == "" || d.Description == "" || d.Image == "" {
		return &ValidationError{Rule: 1, Message: MsgFillAllFields}
	}

	// 规则 2：至少一个分类
	if d.Categories.Len() == 0 {
		return &ValidationError{Rule: 2, Message: MsgSelectCategory}
	}

	// 规则 3：价格必须是数字
	if _, err := strconv.ParseFloat(d.Price, 64); err != nil {
		return &ValidationError{Rule: 3, Message: MsgPriceNumber}
	}

	// 规则 4：图片必须是可加载的图片资源
	if err := v.prober.ProbeImage(ctx, d.Image); err != nil {
		return &ValidationError{Rule: 4, Message: MsgImageURL}
	}

	// 规则 5：描述长度
	descLen := utf8.RuneCountInString(d.Description)
	if descLen < minDescriptionLen {
		return &ValidationError{Rule: 5, Message: MsgDescTooShort}
	}
	if v.strict && descLen > maxDescriptionLen {
		return &ValidationError{Rule: 5, Message: MsgDescTooLong}
	}

	// 规则 6：标题首字母大写
	r, _ := utf8.DecodeRuneInString(d.Title)
	if !unicode.IsUpper(r) {
		return &ValidationError{Rule: 6, Message: MsgTitleCapital}
	}

	// 规则 7：标题长度（严格模式）
	if v.strict && utf8.RuneCountInString(d.Title) > maxTitleLen {
		return &ValidationError{Rule: 7, Message: MsgTitleTooLong}
	}

	return nil
}
