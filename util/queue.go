package util

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

// Queue 无界(或限长)的先进先出队列，生产者不阻塞，消费者可带超时等待。
// MaxLen 大于 0 时超出部分丢弃最旧的数据。
type Queue[T any] struct {
	MaxLen  int
	mu      sync.Mutex
	items   deque.Deque[T]
	notify  chan struct{}
	dropped uint64
	gen     uint64 // 每次 Clear 加一
	once    sync.Once
}

func (q *Queue[T]) init() {
	q.once.Do(func() {
		q.notify = make(chan struct{}, 1)
	})
}

// Push 追加到队尾并唤醒一个等待的消费者
func (q *Queue[T]) Push(v T) {
	q.init()
	q.mu.Lock()
	q.items.PushBack(v)
	if q.MaxLen > 0 {
		for q.items.Len() > q.MaxLen {
			q.items.PopFront()
			q.dropped++
		}
	}
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// TryPop 非阻塞取队首
func (q *Queue[T]) TryPop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Len() == 0 {
		return
	}
	return q.items.PopFront(), true
}

// Pop 取队首，队列为空时最多等待 timeout，ctx 结束也会返回
func (q *Queue[T]) Pop(ctx context.Context, timeout time.Duration) (v T, ok bool) {
	q.init()
	if v, ok = q.TryPop(); ok {
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-q.notify:
			if v, ok = q.TryPop(); ok {
				q.wakeNext()
				return
			}
		case <-timer.C:
			return q.TryPop()
		case <-ctx.Done():
			return
		}
	}
}

// 多个消费者时把剩余的通知传下去
func (q *Queue[T]) wakeNext() {
	if q.Len() > 0 {
		select {
		case q.notify <- struct{}{}:
		default:
		}
	}
}

// Clear 清空队列，返回丢弃的数量
func (q *Queue[T]) Clear() (n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n = q.items.Len()
	q.items.Clear()
	q.gen++
	return
}

// Generation 当前代数，配合 Requeue 使用
func (q *Queue[T]) Generation() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gen
}

// Requeue 把取出但没有用掉的数据放回队首。
// 取出之后队列被清空过（代数变化）或已满时丢弃，返回是否放回。
func (q *Queue[T]) Requeue(v T, gen uint64) bool {
	q.init()
	q.mu.Lock()
	if q.gen != gen || (q.MaxLen > 0 && q.items.Len() >= q.MaxLen) {
		q.mu.Unlock()
		return false
	}
	q.items.PushFront(v)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Dropped 因超长被丢弃的总数
func (q *Queue[T]) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
