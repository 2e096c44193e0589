package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	CheckSubmissionRateLimit(ctx context.Context, identifier string) (bool, int, int, error)
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.Config
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg *config.Config) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

func submissionKey(identifier string) string {
	return fmt.Sprintf("parts_request_submissions:%s", identifier)
}

// CheckSubmissionRateLimit counts checkout submissions of one submitter
// (e-mail or client IP) in a sliding window. Returns isAllowed, attempts
// left, seconds to wait, error.
func (r *redisRepository) CheckSubmissionRateLimit(ctx context.Context, identifier string) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := submissionKey(identifier)
	window := r.cfg.RateConfig.WindowSize
	maxAttempts := r.cfg.RateConfig.MaxAttempts

	now := r.now()
	windowStart := now.Add(-window).UnixMilli()

	// scores are unix millis; members carry nanos so two attempts in the same
	// millisecond stay distinct
	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > maxAttempts {

		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
		if err != nil {
			logger.Error("Failed to get oldest submission time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(window.Seconds()), fmt.Errorf("failed to get oldest submission time: %w", err)
		}

		if len(scores) == 0 {
			logger.Error("Rate limit window emptied while counting", slog.String("key", key))
			return false, 0, int(window.Seconds()), fmt.Errorf("no submissions found in rate limit window for key %s", key)
		}

		oldest := time.UnixMilli(int64(scores[0].Score))
		retryAfter := max(int(oldest.Add(window).Sub(now).Seconds()), 1)

		logger.Warn("Submission rate limit exceeded", slog.String("identifier", identifier), slog.Int64("attempts", attempts))
		return false, 0, retryAfter, nil
	}

	remaining := maxAttempts - attempts

	logger.Debug("Rate limit check passed", slog.String("identifier", identifier), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))
	return true, int(remaining), 0, nil
}
