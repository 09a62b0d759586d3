package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher writes messages into a JetStream stream.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, js: js}, nil
}

// EnsureStream creates the stream or updates it to match cfg.
func (p *Publisher) EnsureStream(ctx context.Context, cfg jetstream.StreamConfig) error {
	if _, err := p.js.CreateOrUpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", cfg.Name, err)
	}
	return nil
}

// Publish sends data to subject. msgId enables server-side deduplication.
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte, msgId string) error {
	var opts []jetstream.PublishOpt
	if msgId != "" {
		opts = append(opts, jetstream.WithMsgID(msgId))
	}
	if _, err := p.js.Publish(ctx, subject, data, opts...); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
