package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"health-wheel/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// SessionOptions builds the client options of the session allow-list.
// REDIS_URL wins over host and port when both are configured.
func SessionOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// NewSessionClient connects the store holding session:{patient}:{session}
// keys. Sign-in and every authenticated request depend on it, so an
// unreachable server fails startup.
func NewSessionClient(ctx context.Context, cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	opts, err := SessionOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to session store at %s: %w", opts.Addr, err)
	}

	log.Infof("Session store connected at %s (db %d)", opts.Addr, opts.DB)
	return client, nil
}
