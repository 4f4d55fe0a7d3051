package outbox

import "testing"

func TestTopicForDerivesFromEventName(t *testing.T) {
	w := &Worker{}
	if got := w.topicFor("booking.requested"); got != "booking.events.v1" {
		t.Fatalf("topicFor = %q", got)
	}
	if got := w.topicFor("booking"); got != "booking.events.v1" {
		t.Fatalf("bare name topicFor = %q", got)
	}
}

func TestTopicForAppliesPrefix(t *testing.T) {
	w := &Worker{TopicPrefix: "staging."}
	if got := w.topicFor("booking.accepted"); got != "staging.booking.events.v1" {
		t.Fatalf("topicFor = %q", got)
	}
}

func TestNextRetryWalksBackoffSchedule(t *testing.T) {
	w := &Worker{}
	if w.nextRetry(0).IsZero() {
		t.Fatal("default retry must be set")
	}
}
