package receipt

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/poskit-v1/terminal/internal/billing"
	errx "github.com/poskit-v1/terminal/internal/core/error"
	logx "github.com/poskit-v1/terminal/pkg/logger"
)

// Publisher forwards a settled bill to the back-office receipt feed.
type Publisher interface {
	Publish(ctx context.Context, res billing.BillResult) error
}

// NopPublisher is used when no feed is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, billing.BillResult) error {
	return nil
}

// RedisPublisher appends rendered receipts to a Redis list, newest last.
type RedisPublisher struct {
	rdb      redis.Cmdable
	key      string
	currency string
}

func NewRedisPublisher(rdb redis.Cmdable, key, currency string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, key: key, currency: currency}
}

func (p *RedisPublisher) Publish(ctx context.Context, res billing.BillResult) error {
	rendered := Render(res, p.currency)
	if err := p.rdb.RPush(ctx, p.key, rendered).Err(); err != nil {
		logx.Error().Err(err).Str("key", p.key).Str("bill", res.ID.String()).Msg("failed to push receipt")
		return errx.WrapRedis(err)
	}
	logx.Debug().Str("key", p.key).Str("bill", res.ID.String()).Msg("receipt published")
	return nil
}
