package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Skotchmaster/order_api/internal/db/dbtest"
	"github.com/Skotchmaster/order_api/internal/events"
	"github.com/Skotchmaster/order_api/internal/repo"
	"github.com/Skotchmaster/order_api/internal/tokens"
)

type published struct {
	topic string
	key   string
	event events.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{topic: topic, key: key, event: event})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.event.Type)
	}
	return out
}

var errBrokerDown = errors.New("broker down")

func newAuthService(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &AuthService{
		Repo:      repo.NewUserRepo(dbtest.New(t)),
		Tokens:    tokens.NewIssuer([]byte("test-jwt-secret")),
		Publisher: pub,
	}, pub
}

func newOrderService(t *testing.T) (*OrderService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return &OrderService{
		Repo:      repo.NewOrderRepo(dbtest.New(t), 0),
		Publisher: pub,
	}, pub
}
