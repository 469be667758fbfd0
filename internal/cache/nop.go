package cache

import (
	"context"
	"errors"
	"time"
)

// ErrDisabled is returned by NopCache for counters, so callers that
// depend on shared state (rate limiting) can tell "off" from "zero".
var ErrDisabled = errors.New("cache disabled")

// NopCache is used when REDIS_URL is unset. Reads always miss and writes
// are discarded.
type NopCache struct{}

func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NopCache) Delete(context.Context, string) error                     { return nil }
func (NopCache) Ping(context.Context) error                               { return nil }

func (NopCache) IncrWithExpiry(context.Context, string, time.Duration) (int64, error) {
	return 0, ErrDisabled
}

var _ Cache = NopCache{}
