package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"civica/contexts/voting-core/vote-ledger/ports"
	contractsv1 "civica/contracts/gen/events/v1"
)

type fakeOutbox struct {
	rows      []ports.OutboxMessage
	published []string
	failed    []string
	listErr   error
}

func (f *fakeOutbox) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > len(f.rows) {
		limit = len(f.rows)
	}
	out := make([]ports.OutboxMessage, limit)
	copy(out, f.rows[:limit])
	return out, nil
}

func (f *fakeOutbox) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	f.published = append(f.published, outboxID)
	return nil
}

func (f *fakeOutbox) MarkOutboxFailed(_ context.Context, outboxID string, _ time.Time) error {
	f.failed = append(f.failed, outboxID)
	return nil
}

type fakePublisher struct {
	topics []string
	events []contractsv1.Envelope
	failOn string
	pubErr error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, event contractsv1.Envelope) error {
	if f.failOn != "" && event.EventID == f.failOn {
		return f.pubErr
	}
	f.topics = append(f.topics, topic)
	f.events = append(f.events, event)
	return nil
}

func pendingRow(t *testing.T, eventID string) ports.OutboxMessage {
	t.Helper()
	payload, err := json.Marshal(contractsv1.Envelope{
		EventID:       eventID,
		EventType:     "voting.vote_cast",
		OccurredAt:    time.Date(2026, time.May, 11, 10, 0, 0, 0, time.UTC),
		SourceService: "voting-core/vote-ledger",
		SchemaVersion: 1,
		PartitionKey:  "election-1",
		Data:          json.RawMessage(`{"vote_id":"vote-1"}`),
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return ports.OutboxMessage{ID: eventID, EventType: "voting.vote_cast", Payload: payload, Status: "pending"}
}

func TestRunOncePublishesPendingBatchInOrder(t *testing.T) {
	outbox := &fakeOutbox{rows: []ports.OutboxMessage{
		pendingRow(t, "evt-1"),
		pendingRow(t, "evt-2"),
	}}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 10}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay cycle failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "voting.vote_cast" {
		t.Fatalf("unexpected topic %q", publisher.topics[0])
	}
	if publisher.events[0].EventID != "evt-1" || publisher.events[1].EventID != "evt-2" {
		t.Fatal("events must publish in outbox order")
	}
	if len(outbox.published) != 2 || outbox.published[0] != "evt-1" {
		t.Fatalf("rows not marked published in order: %v", outbox.published)
	}
}

func TestRunOnceMarksUndecodableRowFailedAndContinues(t *testing.T) {
	broken := ports.OutboxMessage{ID: "evt-bad", EventType: "voting.vote_cast", Payload: []byte("{not json"), Status: "pending"}
	outbox := &fakeOutbox{rows: []ports.OutboxMessage{broken, pendingRow(t, "evt-2")}}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 10}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay cycle failed: %v", err)
	}
	if len(outbox.failed) != 1 || outbox.failed[0] != "evt-bad" {
		t.Fatalf("broken row must be marked failed, got %v", outbox.failed)
	}
	if len(publisher.events) != 1 || publisher.events[0].EventID != "evt-2" {
		t.Fatal("healthy row after the broken one must still publish")
	}
}

func TestRunOnceStopsBatchOnPublishFailure(t *testing.T) {
	outbox := &fakeOutbox{rows: []ports.OutboxMessage{
		pendingRow(t, "evt-1"),
		pendingRow(t, "evt-2"),
		pendingRow(t, "evt-3"),
	}}
	busDown := errors.New("broker unavailable")
	publisher := &fakePublisher{failOn: "evt-2", pubErr: busDown}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 10}

	err := relay.RunOnce(context.Background())
	if !errors.Is(err, busDown) {
		t.Fatalf("expected broker error to surface, got %v", err)
	}
	if len(outbox.published) != 1 || outbox.published[0] != "evt-1" {
		t.Fatalf("only rows before the failure may be marked published: %v", outbox.published)
	}
	if len(outbox.failed) != 0 {
		t.Fatal("a publish failure must leave the row pending for the next cycle")
	}
}

func TestRunOnceRespectsBatchSize(t *testing.T) {
	outbox := &fakeOutbox{rows: []ports.OutboxMessage{
		pendingRow(t, "evt-1"),
		pendingRow(t, "evt-2"),
		pendingRow(t, "evt-3"),
	}}
	publisher := &fakePublisher{}
	relay := OutboxRelay{Outbox: outbox, Publisher: publisher, BatchSize: 2}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay cycle failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("batch size must bound the cycle, published %d", len(publisher.events))
	}
}
