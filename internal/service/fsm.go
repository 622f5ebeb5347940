package service

import "errors"

// 提交流程状态
const (
	StateIdle               = "idle"
	StateValidating         = "validating"
	StateCreatingCategories = "creating_categories"
	StateSubmitting         = "submitting"
	StateSucceeded          = "succeeded"
	StateFailed             = "failed"
)

var ErrInvalidTransition = errors.New("invalid submission state transition")

// 提交状态机的合法迁移表
// Idle → Validating → CreatingCategories → Submitting → {Succeeded, Failed} → Idle
// 校验不通过时从 Validating 直接进入 Failed，不发任何网络请求
var transitions = map[string]map[string]struct{}{
	StateIdle:               {StateValidating: {}},
	StateValidating:         {StateCreatingCategories: {}, StateFailed: {}},
	StateCreatingCategories: {StateSubmitting: {}, StateFailed: {}},
	StateSubmitting:         {StateSucceeded: {}, StateFailed: {}},
	StateSucceeded:          {StateIdle: {}},
	StateFailed:             {StateIdle: {}},
}

// CanTransition 状态迁移是否合法
func CanTransition(from, to string) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}
