package redisfactory

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// If one connection needs to be broken up new function should be introduced
// example: QuotesClient()

type Factory struct {
	settingsCache *redis.Client
}

// New returns a factory without clients when SETTINGS_REDIS_URI is empty.
func New() *Factory {
	uri := os.Getenv("SETTINGS_REDIS_URI")
	if uri == "" {
		return &Factory{}
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return &Factory{
		settingsCache: redis.NewClient(opt),
	}
}

// SettingsCacheClient is nil when caching is not configured.
func (f *Factory) SettingsCacheClient() *redis.Client {
	return f.settingsCache
}
