package stats

import (
	"context"
	"time"

	"helpdesk-rag-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "stats:req:"

// Recorder counts API hits per route in Redis and periodically flushes the
// counters into the structured log. Counting is best effort: a Redis outage
// never fails the request being counted.
type Recorder struct {
	rdb *redis.Client
	log logger.ILogger
}

func NewRecorder(rdb *redis.Client, log logger.ILogger) *Recorder {
	return &Recorder{rdb: rdb, log: log}
}

// Middleware increments the counter for the matched route after the handler
// chain completes.
func (r *Recorder) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()

		route := ctx.Route().Path
		if route == "" || route == "/" {
			route = ctx.Path()
		}
		if incErr := r.rdb.Incr(ctx.Context(), keyPrefix+ctx.Method()+" "+route).Err(); incErr != nil {
			r.log.Warn("STATS", "Failed to record request", map[string]interface{}{"error": incErr.Error()})
		}

		return err
	}
}

// Run flushes and resets the counters every interval until the context is
// cancelled.
func (r *Recorder) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.flush(ctx)
		}
	}
}

func (r *Recorder) flush(ctx context.Context) {
	var cursor uint64
	counts := make(map[string]interface{})

	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			r.log.Warn("STATS", "Failed to scan request counters", map[string]interface{}{"error": err.Error()})
			return
		}
		for _, key := range keys {
			count, err := r.rdb.GetDel(ctx, key).Result()
			if err != nil {
				continue
			}
			counts[key[len(keyPrefix):]] = count
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(counts) > 0 {
		r.log.Info("STATS", "API request counts", counts)
	}
}
