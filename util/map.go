package util

import "sync"

type Map[K comparable, V any] struct {
	sync.RWMutex
	Map map[K]V
}

func (m *Map[K, V]) Init() {
	m.Map = make(map[K]V)
}

func (m *Map[K, V]) Set(k K, v V) {
	m.Lock()
	m.Map[k] = v
	m.Unlock()
}

// Upsert 不存在时用 create 创建，存在时在写锁内调用 update
func (m *Map[K, V]) Upsert(k K, create func() V, update func(V)) (created bool) {
	m.Lock()
	defer m.Unlock()
	if v, ok := m.Map[k]; ok {
		update(v)
		return false
	}
	m.Map[k] = create()
	return true
}

func (m *Map[K, V]) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.Map)
}

func (m *Map[K, V]) Get(k K) (v V, ok bool) {
	m.RLock()
	defer m.RUnlock()
	v, ok = m.Map[k]
	return
}

func (m *Map[K, V]) Delete(k K) {
	m.Lock()
	delete(m.Map, k)
	m.Unlock()
}

// DeleteFunc 删除所有满足条件的项，返回删除数量
func (m *Map[K, V]) DeleteFunc(del func(K, V) bool) (n int) {
	m.Lock()
	defer m.Unlock()
	for k, v := range m.Map {
		if del(k, v) {
			delete(m.Map, k)
			n++
		}
	}
	return
}

func (m *Map[K, V]) Clear() {
	m.Lock()
	m.Map = make(map[K]V)
	m.Unlock()
}

// MapList 在读锁内把每一项转换成 R
func MapList[K comparable, V any, R any](m *Map[K, V], f func(K, V) R) (r []R) {
	m.RLock()
	defer m.RUnlock()
	r = make([]R, 0, len(m.Map))
	for k, v := range m.Map {
		r = append(r, f(k, v))
	}
	return
}
