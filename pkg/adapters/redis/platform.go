package redis

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/graft/pkg/ports"
)

// Event is published on the events channel for every change.
type Event struct {
	Op   string `json:"op"`
	Name string `json:"name"`
}

// Platform implements ports.Platform by publishing command descriptions to Redis.
// Registrations are stored as JSON in a hash keyed by qualified name.
type Platform[F any] struct {
	client  *backend.Client
	prefix  string
	timeout time.Duration
}

type Option func(*config)

type config struct {
	prefix  string
	timeout time.Duration
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithTimeout bounds every Redis call.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// New creates a platform connected to address.
func New[F any](address, password string, db int, opts ...Option) *Platform[F] {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient[F](rdb, opts...)
}

// NewFromClient creates a platform from an existing client.
func NewFromClient[F any](client *backend.Client, opts ...Option) *Platform[F] {
	c := config{prefix: "graft:", timeout: 2 * time.Second}
	for _, opt := range opts {
		opt(&c)
	}
	return &Platform[F]{client: client, prefix: c.prefix, timeout: c.timeout}
}

func (p *Platform[F]) commandsKey() string { return p.prefix + "commands" }

// EventsChannel is the pub/sub channel changes are announced on.
func (p *Platform[F]) EventsChannel() string { return p.prefix + "events" }

// Register stores the handle. It reports false when Redis cannot be written.
func (p *Platform[F]) Register(name string, handle *ports.Handle[F]) bool {
	data, err := json.Marshal(handle)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.client.HSet(ctx, p.commandsKey(), name, data).Err(); err != nil {
		return false
	}
	p.announce(ctx, "register", name)
	return true
}

// Unregister deletes the stored handle.
func (p *Platform[F]) Unregister(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if n, err := p.client.HDel(ctx, p.commandsKey(), name).Result(); err == nil && n > 0 {
		p.announce(ctx, "unregister", name)
	}
}

func (p *Platform[F]) announce(ctx context.Context, op, name string) {
	data, err := json.Marshal(Event{Op: op, Name: name})
	if err != nil {
		return
	}
	// Subscribers are optional; a failed publish does not undo the write.
	_ = p.client.Publish(ctx, p.EventsChannel(), data).Err()
}

// Names lists the stored qualified names. It returns nil when Redis is unreachable.
func (p *Platform[F]) Names() []string {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	names, err := p.client.HKeys(ctx, p.commandsKey()).Result()
	if err != nil {
		return nil
	}
	return names
}

// Get reads back the stored description of a command. Node is not restored.
func (p *Platform[F]) Get(ctx context.Context, name string) (*ports.Handle[F], error) {
	data, err := p.client.HGet(ctx, p.commandsKey(), name).Bytes()
	if err != nil {
		return nil, err
	}
	var h ports.Handle[F]
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Close releases the client.
func (p *Platform[F]) Close() error {
	return p.client.Close()
}
