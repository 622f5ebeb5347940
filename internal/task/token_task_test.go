package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ==================== Mock 实现 ====================

type mockSession struct {
	expiryFn   func() (time.Time, error)
	renewFn    func(ctx context.Context) error
	renewCalls int
}

func (m *mockSession) AuthExpiry() (time.Time, error) {
	if m.expiryFn != nil {
		return m.expiryFn()
	}
	return time.Now().Add(2 * time.Hour), nil
}

func (m *mockSession) Renew(ctx context.Context) error {
	m.renewCalls++
	if m.renewFn != nil {
		return m.renewFn(ctx)
	}
	return nil
}

// ==================== 续期逻辑测试 ====================

// 距过期还早：不续期
func TestTokenTask_RenewNotNeeded(t *testing.T) {
	session := &mockSession{}
	task := NewTokenTask(session)

	task.renewJob(context.Background())
	if session.renewCalls != 0 {
		t.Errorf("距过期 2h 不应续期, renewCalls = %d", session.renewCalls)
	}
}

// 进入续期窗口：触发续期
func TestTokenTask_RenewInsideWindow(t *testing.T) {
	session := &mockSession{
		expiryFn: func() (time.Time, error) {
			return time.Now().Add(5 * time.Minute), nil
		},
	}
	task := NewTokenTask(session)

	task.renewJob(context.Background())
	if session.renewCalls != 1 {
		t.Errorf("进入窗口应续期一次, renewCalls = %d", session.renewCalls)
	}
}

// Token 已过期：同样触发续期
func TestTokenTask_RenewExpired(t *testing.T) {
	session := &mockSession{
		expiryFn: func() (time.Time, error) {
			return time.Now().Add(-time.Minute), nil
		},
	}
	task := NewTokenTask(session)

	task.renewJob(context.Background())
	if session.renewCalls != 1 {
		t.Errorf("已过期应续期, renewCalls = %d", session.renewCalls)
	}
}

// 读取过期时间失败：跳过本轮，不中断任务
func TestTokenTask_ExpiryReadFailure(t *testing.T) {
	session := &mockSession{
		expiryFn: func() (time.Time, error) {
			return time.Time{}, errors.New("no token set")
		},
	}
	task := NewTokenTask(session)

	task.renewJob(context.Background())
	if session.renewCalls != 0 {
		t.Errorf("读取失败不应续期, renewCalls = %d", session.renewCalls)
	}
}

func TestTokenTask_SetRenewWindow(t *testing.T) {
	session := &mockSession{
		expiryFn: func() (time.Time, error) {
			return time.Now().Add(30 * time.Minute), nil
		},
	}
	task := NewTokenTask(session)

	task.renewJob(context.Background())
	if session.renewCalls != 0 {
		t.Fatalf("默认窗口外不应续期, renewCalls = %d", session.renewCalls)
	}

	task.SetRenewWindow(time.Hour)
	task.renewJob(context.Background())
	if session.renewCalls != 1 {
		t.Errorf("扩大窗口后应续期, renewCalls = %d", session.renewCalls)
	}
}
