package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	// URL takes precedence over the host fields, e.g. redis://:secret@cache:6379/0.
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

func (c *Config) options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: invalid url: %w", err)
		}
		return opts, nil
	}
	if c.Host == "" {
		return nil, fmt.Errorf("redis: host is required")
	}
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(c.Host, port),
		Password: c.Password,
		DB:       c.DB,
	}, nil
}

// Client is the shared Redis connection. The application uses it for distributed rate
// limits and the health check; it stores no submission data.
type Client struct {
	client *redis.Client
}

// Connect dials Redis and fails unless it answers a ping within five seconds.
func Connect(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis: config is required")
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) GetClient() *redis.Client {
	return c.client
}
