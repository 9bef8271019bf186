package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statisticsCacheTTL      = 30 * time.Second
	statisticsGenerationTTL = 48 * time.Hour
)

// StatisticsSnapshot 统计计数快照，按自然日缓存
type StatisticsSnapshot struct {
	Day             string `json:"day"`
	TodayCount      int    `json:"today_count"`
	TotalCount      int    `json:"total_count"`
	CarCount        int    `json:"car_count"`
	MotorcycleCount int    `json:"motorcycle_count"`
	Generation      int64  `json:"generation"`
	ComputedAt      int64  `json:"computed_at"`
}

// 仅当代次未变化时写入快照，避免覆盖已失效的结果
var setStatisticsIfGenerationScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
	current = "0"
end
if current ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

func statisticsKey(day string) string {
	return fmt.Sprintf("stats:submissions:%s", day)
}

func statisticsGenerationKey(day string) string {
	return fmt.Sprintf("stats:submissions:%s:gen", day)
}

// GetStatistics 获取指定自然日的统计快照
func GetStatistics(ctx context.Context, day string) (*StatisticsSnapshot, bool, error) {
	if day == "" {
		return nil, false, nil
	}
	var snapshot StatisticsSnapshot
	hit, err := GetJSON(ctx, statisticsKey(day), &snapshot)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &snapshot, true, nil
}

// StatisticsGeneration 获取统计代次，未写入过时为 0
func StatisticsGeneration(ctx context.Context, day string) (int64, error) {
	if !Enabled() || day == "" {
		return 0, nil
	}
	val, err := redisClient.Get(ctx, buildKey(statisticsGenerationKey(day))).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return val, err
}

// BumpStatistics 递增统计代次并删除快照，进行中的重算不会再写回旧结果
func BumpStatistics(ctx context.Context, day string) error {
	if !Enabled() || day == "" {
		return nil
	}
	genKey := buildKey(statisticsGenerationKey(day))
	pipe := redisClient.TxPipeline()
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, statisticsGenerationTTL)
	pipe.Del(ctx, buildKey(statisticsKey(day)))
	_, err := pipe.Exec(ctx)
	return err
}

// SetStatisticsIfGeneration 代次仍为 generation 时写入快照，返回是否写入
func SetStatisticsIfGeneration(ctx context.Context, snapshot *StatisticsSnapshot, generation int64) (bool, error) {
	if !Enabled() || snapshot == nil || snapshot.Day == "" {
		return false, nil
	}
	snapshot.Generation = generation
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return false, err
	}
	keys := []string{
		buildKey(statisticsGenerationKey(snapshot.Day)),
		buildKey(statisticsKey(snapshot.Day)),
	}
	stored, err := setStatisticsIfGenerationScript.Run(ctx, redisClient, keys,
		strconv.FormatInt(generation, 10),
		payload,
		statisticsCacheTTL.Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}
