package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/weiawesome/wes-io-blog/internal/events"
	"github.com/weiawesome/wes-io-blog/pkg/pubsub"
)

type capturePublisher struct {
	got []*pubsub.Event
	err error
}

func (p *capturePublisher) Publish(_ context.Context, e *pubsub.Event) error {
	p.got = append(p.got, e)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }

func TestEmit(t *testing.T) {
	pub := &capturePublisher{}
	e := events.NewEmitter(pub)

	e.Emit(context.Background(), events.PostCreated, "p1", events.PostPayload{PostID: "p1", AuthorID: "u1"})

	if len(pub.got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.got))
	}
	ev := pub.got[0]
	if ev.Type != events.PostCreated || ev.Key != "p1" {
		t.Fatalf("unexpected event %+v", ev)
	}

	var payload events.PostPayload
	if err := ev.UnmarshalPayload(&payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.AuthorID != "u1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestEmit_SwallowsPublishErrors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	e := events.NewEmitter(pub)

	// Must not panic or surface the error.
	e.Emit(context.Background(), events.UserDeleted, "u1", events.UserPayload{UserID: "u1"})
	if len(pub.got) != 1 {
		t.Fatalf("expected publish attempt, got %d", len(pub.got))
	}
}

func TestNewEmitter_NilPublisher(t *testing.T) {
	e := events.NewEmitter(nil)
	e.Emit(context.Background(), events.UserRegistered, "u1", events.UserPayload{UserID: "u1"})
}
