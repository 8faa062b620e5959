package app

import (
	"testing"
	"time"

	"noukie-quiz-service/internal/domain"
)

func TestProgressSubscribeReceivesUpdates(t *testing.T) {
	hub := NewProgressHub()

	updates, cancel := hub.Subscribe("s1")
	defer cancel()

	initial := <-updates
	if initial.Answered != 0 || initial.Finished {
		t.Fatalf("expected empty initial snapshot, got %+v", initial)
	}

	now := time.Now()
	hub.PublishAnswer("s1", domain.VerdictCorrect, now)

	update := <-updates
	if update.Answered != 1 || update.Correct != 1 || update.LastVerdict != domain.VerdictCorrect {
		t.Fatalf("expected answered snapshot, got %+v", update)
	}

	hub.PublishFinish("s1", 1, 1, 100, now)
	final := <-updates
	if !final.Finished || final.Percent != 100 {
		t.Fatalf("expected finished snapshot, got %+v", final)
	}
}

func TestProgressSlowSubscriberKeepsLatest(t *testing.T) {
	hub := NewProgressHub()

	updates, cancel := hub.Subscribe("s1")
	defer cancel()
	<-updates

	now := time.Now()
	// Overflow the subscriber buffer; broadcast must not block and the
	// freshest snapshot must survive.
	for i := 0; i < 20; i++ {
		hub.PublishAnswer("s1", domain.VerdictCorrect, now)
	}

	var last PlayProgress
	for {
		select {
		case p := <-updates:
			last = p
			continue
		default:
		}
		break
	}
	if last.Answered != 20 {
		t.Fatalf("expected latest snapshot retained, got %+v", last)
	}
}

func TestProgressCancelIsIdempotent(t *testing.T) {
	hub := NewProgressHub()
	_, cancel := hub.Subscribe("s1")
	cancel()
	cancel()
}
