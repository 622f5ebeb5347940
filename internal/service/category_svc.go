package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/KayTee1/E-commerce/internal/model"
	"github.com/KayTee1/E-commerce/pkg/utils"
)

// ==================== 接口定义 ====================

// CategoryAPI 分类接口（api.Client 实现）
type CategoryAPI interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
}

// ==================== 对账错误 ====================

// ReconcileError 分类对账失败
// 采用全有或全无策略：任何一个分类创建失败都会中止整次提交，
// 并把失败的分类名一并带出，避免商品引用到后端根本没有的分类
type ReconcileError struct {
	Failed []string
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("failed to create categories: %s", strings.Join(e.Failed, ", "))
}

// ==================== 分类服务 ====================

// CategoryService 分类对账服务
type CategoryService struct {
	api      CategoryAPI
	snapshot *utils.SnapshotCache[[]model.Category]
}

// NewCategoryService 创建分类服务
func NewCategoryService(api CategoryAPI) *CategoryService {
	return &CategoryService{
		api:      api,
		snapshot: utils.NewSnapshotCache[[]model.Category](10 * time.Minute),
	}
}

// Known 已知分类快照
// 表单挂载时拉取一次，同一快照在单次提交流程内只读复用
func (s *CategoryService) Known(ctx context.Context) ([]model.Category, error) {
	if cached, ok := s.snapshot.Get(); ok {
		return cached, nil
	}

	known, err := s.api.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot.Set(known)
	return known, nil
}

// InvalidateKnown 作废快照（新表单挂载前调用）
func (s *CategoryService) InvalidateKnown() {
	s.snapshot.Invalidate()
}

// Missing 计算需要新建的分类
// 选中分类中，归一化名称在已知集合里没有大小写无关匹配的那些；
// 不做任何隐式记忆，相同输入重复调用得到相同结果
func (s *CategoryService) Missing(selected, known []model.Category) []model.Category {
	var missing []model.Category
	for _, sel := range selected {
		name := model.NormalizeName(sel.Name)
		found := false
		for _, k := range known {
			if model.SameName(k.Name, name) {
				found = true
				break
			}
		}
		if !found {
			sel.Name = name
			missing = append(missing, sel)
		}
	}
	return missing
}

// Reconcile 对账并补齐缺失分类
// 并发发起创建请求，互不取消，全部完成后统一汇总；
// 存在失败时返回 *ReconcileError，商品提交不得继续
func (s *CategoryService) Reconcile(ctx context.Context, selected, known []model.Category) ([]model.Category, error) {
	missing := s.Missing(selected, known)
	if len(missing) == 0 {
		return nil, nil
	}

	created := make([]model.Category, len(missing))
	errs := make([]error, len(missing))

	var wg sync.WaitGroup
	for i, cat := range missing {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			c, err := s.api.CreateCategory(ctx, name)
			if err != nil {
				errs[idx] = err
				return
			}
			created[idx] = *c
		}(i, cat.Name)
	}
	wg.Wait()

	var failed []string
	for i, err := range errs {
		if err != nil {
			failed = append(failed, missing[i].Name)
			log.Printf("[CategoryService] 分类 %q 创建失败: %v", missing[i].Name, err)
		}
	}
	if len(failed) > 0 {
		return nil, &ReconcileError{Failed: failed}
	}

	log.Printf("[CategoryService] 已补齐 %d 个新分类", len(created))
	return created, nil
}
