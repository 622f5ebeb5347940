package task

import "log"

// ==================== 后台任务管理器 ====================

// Runner 后台任务的生命周期约定
type Runner interface {
	Start()
	Stop()
}

// Manager 统一管理后台任务
// 管理范围：Token 保活等常驻任务；按注册顺序启动，逆序停止
type Manager struct {
	names   []string
	runners []Runner
}

// NewManager 创建任务管理器
func NewManager() *Manager {
	return &Manager{}
}

// Register 注册任务
func (m *Manager) Register(name string, r Runner) {
	m.names = append(m.names, name)
	m.runners = append(m.runners, r)
}

// StartAll 启动所有任务
func (m *Manager) StartAll() {
	log.Println("[TaskManager] 正在启动后台任务...")
	for i, r := range m.runners {
		log.Printf("[TaskManager] 启动任务: %s", m.names[i])
		r.Start()
	}
	log.Println("[TaskManager] 后台任务已全部启动")
}

// StopAll 逆序停止所有任务
func (m *Manager) StopAll() {
	log.Println("[TaskManager] 正在停止后台任务...")
	for i := len(m.runners) - 1; i >= 0; i-- {
		log.Printf("[TaskManager] 停止任务: %s", m.names[i])
		m.runners[i].Stop()
	}
	log.Println("[TaskManager] 后台任务已全部停止")
}

// Status 任务注册状态
func (m *Manager) Status() map[string]bool {
	out := make(map[string]bool, len(m.names))
	for _, name := range m.names {
		out[name] = true
	}
	return out
}
