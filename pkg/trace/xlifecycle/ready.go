package xlifecycle

import "sync"

// ReadySignal 抽象一次性的"页面/文档就绪"事件源。
type ReadySignal interface {
	// OnReady 注册就绪回调，回调收到当前页面 URL。
	// 信号已经触发过时，实现应立即（同步）调用 fn。
	// 返回的 cancel 用于在触发前注销回调；触发后调用无效果。
	OnReady(fn func(pageURL string)) (cancel func())
}

// SignalFunc 将函数适配为 ReadySignal。
type SignalFunc func(fn func(pageURL string)) (cancel func())

func (f SignalFunc) OnReady(fn func(pageURL string)) (cancel func()) {
	return f(fn)
}

// ManualSignal 是可手动触发的一次性就绪信号。
// 零值可用，所有方法并发安全。
type ManualSignal struct {
	mu    sync.Mutex
	fired bool
	url   string
	next  int
	fns   map[int]func(string)
}

var _ ReadySignal = (*ManualSignal)(nil)

// OnReady 注册就绪回调。
// 信号已触发时立即同步调用 fn 并返回空操作的 cancel。
func (s *ManualSignal) OnReady(fn func(pageURL string)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.fired {
		url := s.url
		s.mu.Unlock()
		fn(url)
		return func() {}
	}

	if s.fns == nil {
		s.fns = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

// Fire 触发就绪信号，按注册顺序同步调用所有回调。
// 信号是一次性的：重复触发被忽略。
func (s *ManualSignal) Fire(pageURL string) {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return
	}
	s.fired = true
	s.url = pageURL

	fns := make([]func(string), 0, len(s.fns))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.fns = nil
	s.mu.Unlock()

	// 锁外调用，允许回调中再注册（立即触发路径）
	for _, fn := range fns {
		fn(pageURL)
	}
}
