package events_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

func Test_Events(t *testing.T) {
	evts := events.New()

	allID, all := evts.Subscribe("")
	_, viewer := evts.Subscribe("viewer:")

	var calls int
	ev := evts.Handler(func(v string, args ...any) { calls++ })

	ev("state: AddTransaction: accepted: pending[%d]", 1)
	ev("viewer: block mined: blk[%d]", 1)

	if calls != 2 {
		t.Fatalf("Should call the next handler for every event, got %d", calls)
	}

	if got := <-all; got != "state: AddTransaction: accepted: pending[1]" {
		t.Fatalf("Should receive the first event, got %q", got)
	}
	if got := <-all; got != "viewer: block mined: blk[1]" {
		t.Fatalf("Should receive the second event, got %q", got)
	}

	if got := <-viewer; got != "viewer: block mined: blk[1]" {
		t.Fatalf("Should receive only viewer events, got %q", got)
	}
	select {
	case got := <-viewer:
		t.Fatalf("Should not receive other events, got %q", got)
	default:
	}

	if err := evts.Unsubscribe(allID); err != nil {
		t.Fatalf("Should be able to unsubscribe: %s", err)
	}
	if _, open := <-all; open {
		t.Fatalf("Should close the channel on unsubscribe.")
	}
	if err := evts.Unsubscribe(allID); err == nil {
		t.Fatalf("Should not unsubscribe twice.")
	}

	for i := 0; i < 200; i++ {
		evts.Send("viewer: flood")
	}

	evts.Shutdown()

	var n int
	for range viewer {
		n++
	}
	if n != 100 {
		t.Fatalf("Should buffer 100 messages and drop the rest, got %d", n)
	}
}
