package service

import (
	"sync"
	"testing"
	"time"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
	delays []time.Duration
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) NoticeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &manualTimer{fn: f}
	s.timers = append(s.timers, timer)
	s.delays = append(s.delays, d)
	return timer
}

func TestNoticeBoardAutoDismiss(t *testing.T) {
	scheduler := &manualScheduler{}
	board := NewNoticeBoard(0, scheduler)
	notice := board.Success("client-a", "信息提交成功！感谢您的配合。")
	if notice.Kind != "success" {
		t.Fatalf("unexpected kind: %s", notice.Kind)
	}
	if scheduler.delays[0] != 3*time.Second {
		t.Fatalf("default dismiss delay want 3s got %s", scheduler.delays[0])
	}
	if got, ok := board.Current("client-a"); !ok || got.Text != notice.Text {
		t.Fatalf("notice should be visible")
	}
	if _, ok := board.Current("client-b"); ok {
		t.Fatalf("notices are per client")
	}

	scheduler.timers[0].fn()
	if _, ok := board.Current("client-a"); ok {
		t.Fatalf("notice should be dismissed after timer fires")
	}
}

func TestNoticeBoardNewNoticeCancelsPrevious(t *testing.T) {
	scheduler := &manualScheduler{}
	board := NewNoticeBoard(5*time.Second, scheduler)
	board.Error("client-a", "最多只能上传3张图片")
	board.Success("client-a", "信息提交成功！感谢您的配合。")

	if !scheduler.timers[0].stopped {
		t.Fatalf("previous dismissal should be cancelled")
	}
	// 已取消的回调即使仍被触发也不能隐藏新消息
	scheduler.timers[0].fn()
	got, ok := board.Current("client-a")
	if !ok || got.Kind != "success" {
		t.Fatalf("latest notice should stay visible, got %+v ok=%v", got, ok)
	}
	scheduler.timers[1].fn()
	if _, ok := board.Current("client-a"); ok {
		t.Fatalf("latest notice should be dismissed by its own timer")
	}
}

func TestNoticeBoardDismissAndClose(t *testing.T) {
	scheduler := &manualScheduler{}
	board := NewNoticeBoard(time.Second, scheduler)
	board.Show("", "unknown", "hello")
	got, ok := board.Current("  ")
	if !ok || got.Kind != "success" {
		t.Fatalf("blank key should map to anonymous and unknown kind to success, got %+v", got)
	}
	board.Dismiss("")
	if !scheduler.timers[0].stopped {
		t.Fatalf("dismiss should stop the timer")
	}
	board.Error("client-a", "x")
	board.Close()
	if !scheduler.timers[1].stopped {
		t.Fatalf("close should stop pending timers")
	}
	if _, ok := board.Current("client-a"); ok {
		t.Fatalf("close should clear notices")
	}
}

func TestNoticeBoardSystemScheduler(t *testing.T) {
	board := NewNoticeBoard(20*time.Millisecond, nil)
	board.Success("client-a", "ok")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := board.Current("client-a"); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notice was not dismissed by the system timer")
}

// immediateScheduler 同步执行回调
type immediateScheduler struct{}

func (immediateScheduler) AfterFunc(_ time.Duration, f func()) NoticeTimer {
	f()
	return &manualTimer{stopped: true}
}

func TestNoticeBoardSynchronousScheduler(t *testing.T) {
	board := NewNoticeBoard(time.Second, immediateScheduler{})

	done := make(chan Notice, 1)
	go func() {
		done <- board.Error("client-a", "只能上传图片文件")
	}()

	select {
	case notice := <-done:
		if notice.Kind != "error" {
			t.Fatalf("unexpected kind: %s", notice.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("show must not block when the scheduler runs the callback immediately")
	}
	if _, ok := board.Current("client-a"); ok {
		t.Fatalf("notice expired synchronously should not stay visible")
	}
}
