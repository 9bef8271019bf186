package service

import (
	"strings"
	"sync"
	"time"

	"github.com/qingjiang-traffic/internal/constants"
)

// DefaultNoticeDismissAfter 提示消息默认展示时长
const DefaultNoticeDismissAfter = 3 * time.Second

// Notice 临时提示消息
type Notice struct {
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	ShownAt   time.Time `json:"shown_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NoticeTimer 可取消的定时任务
type NoticeTimer interface {
	Stop() bool
}

// NoticeScheduler 定时调度器，测试中可替换为手动触发的实现
type NoticeScheduler interface {
	AfterFunc(d time.Duration, f func()) NoticeTimer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) NoticeTimer {
	return time.AfterFunc(d, f)
}

type noticeEntry struct {
	notice Notice
	timer  NoticeTimer
	seq    uint64
}

// NoticeBoard 按客户端保存当前提示消息，到期自动隐藏
// 同一客户端展示新消息时取消上一条的隐藏任务
type NoticeBoard struct {
	mu        sync.Mutex
	after     time.Duration
	scheduler NoticeScheduler
	now       func() time.Time
	entries   map[string]*noticeEntry
	seq       uint64
}

// NewNoticeBoard 创建提示消息面板，scheduler 为空时使用系统定时器
func NewNoticeBoard(after time.Duration, scheduler NoticeScheduler) *NoticeBoard {
	if after <= 0 {
		after = DefaultNoticeDismissAfter
	}
	if scheduler == nil {
		scheduler = systemScheduler{}
	}
	return &NoticeBoard{
		after:     after,
		scheduler: scheduler,
		now:       time.Now,
		entries:   make(map[string]*noticeEntry),
	}
}

// DismissAfter 展示时长
func (b *NoticeBoard) DismissAfter() time.Duration {
	return b.after
}

// Show 展示提示消息并安排自动隐藏
func (b *NoticeBoard) Show(key, kind, text string) Notice {
	key = normalizeNoticeKey(key)
	if kind != constants.NoticeKindError {
		kind = constants.NoticeKindSuccess
	}
	now := b.now()
	notice := Notice{Kind: kind, Text: text, ShownAt: now, ExpiresAt: now.Add(b.after)}

	b.mu.Lock()
	if prev, ok := b.entries[key]; ok && prev.timer != nil {
		prev.timer.Stop()
	}
	b.seq++
	seq := b.seq
	entry := &noticeEntry{notice: notice, seq: seq}
	b.entries[key] = entry
	b.mu.Unlock()

	// 调度器可能同步执行回调，不能持锁调用
	timer := b.scheduler.AfterFunc(b.after, func() {
		b.expire(key, seq)
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries[key] == entry {
		entry.timer = timer
	} else {
		timer.Stop()
	}
	return notice
}

// Success 展示成功消息
func (b *NoticeBoard) Success(key, text string) Notice {
	return b.Show(key, constants.NoticeKindSuccess, text)
}

// Error 展示错误消息
func (b *NoticeBoard) Error(key, text string) Notice {
	return b.Show(key, constants.NoticeKindError, text)
}

// Current 获取客户端当前可见的提示消息
func (b *NoticeBoard) Current(key string) (Notice, bool) {
	key = normalizeNoticeKey(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[key]
	if !ok {
		return Notice{}, false
	}
	return entry.notice, true
}

// Dismiss 立即隐藏提示消息
func (b *NoticeBoard) Dismiss(key string) {
	key = normalizeNoticeKey(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	if entry, ok := b.entries[key]; ok {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(b.entries, key)
	}
}

// Close 取消全部待执行的隐藏任务
func (b *NoticeBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, entry := range b.entries {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(b.entries, key)
	}
}

func (b *NoticeBoard) expire(key string, seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[key]
	// 已被新消息替换时忽略过期回调
	if !ok || entry.seq != seq {
		return
	}
	delete(b.entries, key)
}

func normalizeNoticeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "anonymous"
	}
	return key
}
