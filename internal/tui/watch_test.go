package tui

import (
	"testing"
	"time"

	"github.com/allbin/linemon"
)

func TestChannelSinkNonBlocking(t *testing.T) {
	ch := make(chan linemon.Event, 2)
	sink := NewChannelSink(ch)

	e := linemon.Event{Time: time.Now(), Signal: linemon.SignalCTS, New: true}

	for i := 0; i < 5; i++ {
		if err := sink.Emit(e); err != nil {
			t.Fatalf("Emit must never fail, got %v", err)
		}
	}

	// buffer holds two, the rest were dropped without blocking
	if len(ch) != 2 {
		t.Errorf("channel holds %d events, want 2", len(ch))
	}
}

func TestModelApplyEvent(t *testing.T) {
	m := newModel("/dev/ttyUSB0", linemon.BackendStandard, linemon.LineState{}, nil)

	now := time.Now()
	m.applyEvent(linemon.Event{Time: now, Signal: linemon.SignalCTS, New: true})
	m.applyEvent(linemon.Event{Time: now, Signal: linemon.SignalDTR, New: true})
	m.applyEvent(linemon.Event{Time: now, Signal: linemon.SignalCTS, Old: true, New: false})

	if m.state.CTS {
		t.Error("CTS should be low after the falling edge")
	}
	if !m.state.DTR {
		t.Error("DTR should be high")
	}
	if m.count != 3 {
		t.Errorf("transition count = %d, want 3", m.count)
	}
	if len(m.recent) != 3 {
		t.Fatalf("recent length = %d, want 3", len(m.recent))
	}
	// newest first
	if m.recent[0].Signal != linemon.SignalCTS || m.recent[0].New {
		t.Errorf("newest transition should be the CTS falling edge, got %+v", m.recent[0])
	}
}

func TestModelHistoryBound(t *testing.T) {
	m := newModel("/dev/ttyUSB0", linemon.BackendStandard, linemon.LineState{}, nil)

	e := linemon.Event{Time: time.Now(), Signal: linemon.SignalRTS, New: true}
	for i := 0; i < maxTransitions+50; i++ {
		m.applyEvent(e)
	}

	if len(m.recent) != maxTransitions {
		t.Errorf("history length = %d, want bounded at %d", len(m.recent), maxTransitions)
	}
	if m.count != maxTransitions+50 {
		t.Errorf("transition count = %d, should keep counting past the bound", m.count)
	}
}

func TestWaitForEventClosedChannel(t *testing.T) {
	ch := make(chan linemon.Event)
	close(ch)

	msg := waitForEvent(ch)()
	if _, ok := msg.(monitorStoppedMsg); !ok {
		t.Errorf("closed channel should yield monitorStoppedMsg, got %T", msg)
	}
}

func TestWaitForEventDelivery(t *testing.T) {
	ch := make(chan linemon.Event, 1)
	ch <- linemon.Event{Signal: linemon.SignalDSR, New: true}

	msg := waitForEvent(ch)()
	e, ok := msg.(eventMsg)
	if !ok {
		t.Fatalf("expected eventMsg, got %T", msg)
	}
	if e.Signal != linemon.SignalDSR {
		t.Errorf("signal = %v, want DSR", e.Signal)
	}
}
