package utils

import (
	"sync"
	"time"
)

// SnapshotCache 带过期时间的快照缓存
// 表单挂载时拉取一次已知分类，同一次提交流程内复用同一份快照
type SnapshotCache[T any] struct {
	mu         sync.RWMutex
	value      T
	expiration time.Time
	valid      bool
	ttl        time.Duration
}

// NewSnapshotCache 创建快照缓存
func NewSnapshotCache[T any](ttl time.Duration) *SnapshotCache[T] {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SnapshotCache[T]{ttl: ttl}
}

// Set 写入快照
func (c *SnapshotCache[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.expiration = time.Now().Add(c.ttl)
	c.valid = true
}

// Get 读取快照并检查是否过期
func (c *SnapshotCache[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if !c.valid || time.Now().After(c.expiration) {
		return zero, false
	}
	return c.value, true
}

// Invalidate 作废快照
func (c *SnapshotCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
