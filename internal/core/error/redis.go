package errx

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	// ReceiptSinkMessage describes receipt publishing failures.
	ReceiptSinkMessage = "receipt sink operation failed"
	// ReceiptSinkMissMessage describes a missing key on the sink side.
	ReceiptSinkMissMessage = "receipt sink key not found"
)

// WrapRedis maps Redis errors onto the unified AppError type. Receipt sink
// failures are never fatal to a bill, so callers log and continue.
func WrapRedis(err error) *AppError {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return New(err, CodeReceiptSink, ReceiptSinkMissMessage)
	}

	return New(err, CodeReceiptSink, ReceiptSinkMessage)
}
