package service

import (
	"context"

	"github.com/qingjiang-traffic/internal/cache"
)

// StatisticsCache 统计快照缓存
// 提交成功后递增代次，重算结果只在代次未变化时写回
type StatisticsCache interface {
	Get(ctx context.Context, day string) (*cache.StatisticsSnapshot, bool, error)
	Generation(ctx context.Context, day string) (int64, error)
	Invalidate(ctx context.Context, day string) error
	StoreIfGeneration(ctx context.Context, snapshot *cache.StatisticsSnapshot, generation int64) (bool, error)
}

type redisStatisticsCache struct{}

func (redisStatisticsCache) Get(ctx context.Context, day string) (*cache.StatisticsSnapshot, bool, error) {
	return cache.GetStatistics(ctx, day)
}

func (redisStatisticsCache) Generation(ctx context.Context, day string) (int64, error) {
	return cache.StatisticsGeneration(ctx, day)
}

func (redisStatisticsCache) Invalidate(ctx context.Context, day string) error {
	return cache.BumpStatistics(ctx, day)
}

func (redisStatisticsCache) StoreIfGeneration(ctx context.Context, snapshot *cache.StatisticsSnapshot, generation int64) (bool, error) {
	return cache.SetStatisticsIfGeneration(ctx, snapshot, generation)
}
