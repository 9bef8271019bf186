package service

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// submissionIDRandomBound 编号随机后缀取值上界（不含）
const submissionIDRandomBound = 1000

// FormatSubmissionID 拼接提交编号：S + 毫秒时间戳 + 随机数，均为十进制且不补零
func FormatSubmissionID(epochMillis int64, random int) string {
	return "S" + strconv.FormatInt(epochMillis, 10) + strconv.Itoa(random)
}

// IDGenerator 提交编号生成器，唯一性仅为概率保证
type IDGenerator struct {
	now  func() time.Time
	intn func(int) int
}

// NewIDGenerator 创建编号生成器
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now, intn: rand.IntN}
}

// WithClock 替换时钟，用于测试
func (g *IDGenerator) WithClock(now func() time.Time) *IDGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// WithRandom 替换随机源，用于测试
func (g *IDGenerator) WithRandom(intn func(int) int) *IDGenerator {
	if intn != nil {
		g.intn = intn
	}
	return g
}

// Next 生成编号，同时返回所用的时间
func (g *IDGenerator) Next() (string, time.Time) {
	now := g.now()
	return FormatSubmissionID(now.UnixMilli(), g.intn(submissionIDRandomBound)), now
}
