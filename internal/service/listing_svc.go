package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"

	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/model"
)

// MsgUnexpected 后端/网络故障的兜底文案
const MsgUnexpected = "An unexpected error has occurred"

var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ==================== 接口定义 ====================

// ListingAPI 商品提交接口（api.Client 实现）
type ListingAPI interface {
	PostListing(ctx context.Context, payload *dto.ListingPayload) (*model.SubmitResult, error)
	EditListing(ctx context.Context, id string, payload *dto.ListingPayload) (*model.SubmitResult, error)
}

// ==================== 提交服务 ====================

// ListingService 提交编排器
// 驱动单个表单实例的完整提交流程：校验 → 分类对账 → 提交。
// 顺序上先完成全部校验再对账分类，校验被拒时不会创建任何分类
type ListingService struct {
	validator  *Validator
	categories *CategoryService
	api        ListingAPI

	mu    sync.Mutex
	state string
}

// NewListingService 创建提交编排器
func NewListingService(validator *Validator, categories *CategoryService, api ListingAPI) *ListingService {
	return &ListingService{
		validator:  validator,
		categories: categories,
		api:        api,
		state:      StateIdle,
	}
}

// State 当前状态机状态
func (s *ListingService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// advance 推进状态机，非法迁移返回 ErrInvalidTransition
func (s *ListingService) advance(to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !CanTransition(s.state, to) {
		return ErrInvalidTransition
	}
	s.state = to
	return nil
}

// ==================== 提交流程 ====================

// Submit 执行一次提交
// 结果回写到表单的状态消息并返回；表单已卸载时结果被丢弃。
// 失败路径不修改草稿，用户修正后可直接重试
func (s *ListingService) Submit(form *FormState) model.StatusMessage {
	if err := s.advance(StateValidating); err != nil {
		// 同一表单的上一次提交还在进行中
		return model.StatusMessage{Text: ErrSubmissionInFlight.Error(), Kind: model.StatusError}
	}

	ctx := form.Context()
	draft := form.Draft()

	// 1. 校验（含图片探测，整条路径等待完成）
	if err := s.validator.Validate(ctx, &draft); err != nil {
		return s.fail(form, err.Error())
	}
	if err := s.advance(StateCreatingCategories); err != nil {
		return s.fail(form, MsgUnexpected)
	}

	// 2. 分类对账：缺失分类必须全部创建成功才允许提交商品
	if _, err := s.categories.Reconcile(ctx, draft.Categories.Items(), form.Known()); err != nil {
		var rerr *ReconcileError
		if errors.As(err, &rerr) {
			return s.fail(form, rerr.Error())
		}
		return s.fail(form, MsgUnexpected)
	}
	if err := s.advance(StateSubmitting); err != nil {
		return s.fail(form, MsgUnexpected)
	}

	// 3. 提交商品
	payload := buildPayload(&draft)

	var (
		res *model.SubmitResult
		err error
	)
	if id := form.EditingID(); id != "" {
		res, err = s.api.EditListing(ctx, id, payload)
	} else {
		res, err = s.api.PostListing(ctx, payload)
	}
	if err != nil {
		log.Printf("[ListingService] 商品提交失败: %v", err)
		return s.fail(form, MsgUnexpected)
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = MsgUnexpected
		}
		return s.fail(form, msg)
	}

	return s.succeed(form, res.Message)
}

// fail 进入 Failed 并回写错误消息，随后复位等待下一次提交
func (s *ListingService) fail(form *FormState, text string) model.StatusMessage {
	s.advance(StateFailed)
	msg := model.StatusMessage{Text: text, Kind: model.StatusError}
	s.deliver(form, msg)
	s.advance(StateIdle)
	return msg
}

// succeed 进入 Succeeded 并回写成功消息，随后复位
func (s *ListingService) succeed(form *FormState, text string) model.StatusMessage {
	s.advance(StateSucceeded)
	msg := model.StatusMessage{Text: text, Kind: model.StatusSuccess}
	s.deliver(form, msg)
	s.advance(StateIdle)
	return msg
}

// deliver 结果回写；表单已卸载时丢弃迟到结果
func (s *ListingService) deliver(form *FormState, msg model.StatusMessage) {
	if !form.ApplyStatus(msg) {
		log.Printf("[ListingService] 表单 %s 已卸载，丢弃迟到结果: %s", form.ID(), msg.Text)
	}
}

// buildPayload 草稿换算为提交请求体（价格已通过数字校验）
func buildPayload(d *model.Draft) *dto.ListingPayload {
	price, _ := strconv.ParseFloat(d.Price, 64)
	return &dto.ListingPayload{
		Title:       d.Title,
		Price:       price,
		Description: d.Description,
		Image:       d.Image,
		Owner:       d.Owner,
		Categories:  d.Categories.Names(),
	}
}
