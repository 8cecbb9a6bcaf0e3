// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwills/lumiere/engine"
	"github.com/hwills/lumiere/logger"
)

func TestDispatchQueueIsFIFO(t *testing.T) {
	q := &dispatchQueue{}
	for i := 0; i < 5; i++ {
		q.Push(uiAction{Type: actionForwardedEvent, Event: engine.Event{Type: engine.EventType(i)}})
	}
	require.Equal(t, 5, q.Len())

	for i := 0; i < 5; i++ {
		a, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, engine.EventType(i), a.Event.Type)
	}
	_, ok := q.Pop()
	assert.False(t, ok, "drained queue pops nothing")
}

type wakeCounter struct {
	mu sync.Mutex
	n  int
}

func (w *wakeCounter) wake() {
	w.mu.Lock()
	w.n++
	w.mu.Unlock()
}

func (w *wakeCounter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

func drainedLogger() *logger.Logger {
	lg := logger.Init()
	go func() {
		for range lg.Prints {
		}
	}()
	return lg
}

func TestBridgeForwardsEventsInOrderWithOneWakeEach(t *testing.T) {
	events := make(chan engine.Event, 10)
	queue := &dispatchQueue{}
	wakes := &wakeCounter{}

	bridge := newEventBridge(events, queue, wakes.wake, time.Millisecond, drainedLogger())
	bridge.Start()
	defer bridge.Stop(time.Second)

	for i := 0; i < 3; i++ {
		events <- engine.Event{Type: engine.EventPositionUpdated, Data: i}
	}

	require.Eventually(t, func() bool { return queue.Len() == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, 3, wakes.count(), "exactly one wake per event")

	for i := 0; i < 3; i++ {
		a, ok := queue.Pop()
		require.True(t, ok)
		assert.Equal(t, actionForwardedEvent, a.Type)
		assert.Equal(t, i, a.Event.Data, "emission order preserved")
	}
}

func TestBridgeClosedChannelBecomesQuit(t *testing.T) {
	events := make(chan engine.Event)
	queue := &dispatchQueue{}
	wakes := &wakeCounter{}

	bridge := newEventBridge(events, queue, wakes.wake, time.Millisecond, drainedLogger())
	bridge.Start()
	close(events)

	require.Eventually(t, func() bool { return queue.Len() == 1 }, time.Second, time.Millisecond)
	a, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, actionQuit, a.Type)
	assert.Equal(t, 1, wakes.count())

	select {
	case <-bridge.done:
	case <-time.After(time.Second):
		t.Fatal("bridge goroutine did not exit after channel close")
	}
}

func TestBridgeStopJoins(t *testing.T) {
	events := make(chan engine.Event)
	bridge := newEventBridge(events, &dispatchQueue{}, func() {}, time.Millisecond, drainedLogger())
	bridge.Start()

	done := make(chan struct{})
	go func() {
		bridge.Stop(time.Second)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	// a second Stop is harmless
	bridge.Stop(time.Second)
}

func TestDispatchNextHandlesOneItemPerWake(t *testing.T) {
	ui, ctrl, _ := newTestUi()
	ui.pending.Push(uiAction{Type: actionForwardedEvent, Event: engine.Event{Type: engine.EventPositionUpdated}})
	ui.pending.Push(uiAction{Type: actionForwardedEvent, Event: engine.Event{Type: engine.EventPositionUpdated}})

	ui.dispatchNext()
	assert.Len(t, ctrl.callsNamed("Position"), 1)
	assert.Equal(t, 1, ui.pending.Len())

	ui.dispatchNext()
	assert.Len(t, ctrl.callsNamed("Position"), 2)
}

func TestDispatchNextDiscardsEventsAfterQuit(t *testing.T) {
	ui, ctrl, shell := newTestUi()
	ui.pending.Push(uiAction{Type: actionQuit})
	ui.pending.Push(uiAction{Type: actionForwardedEvent, Event: engine.Event{Type: engine.EventPositionUpdated}})

	ui.dispatchNext()
	assert.Equal(t, 1, shell.stopCount)

	ui.dispatchNext()
	assert.Empty(t, ctrl.callsNamed("Position"), "events behind a Quit are dropped")
}

func TestDispatchVideoDimensions(t *testing.T) {
	ui, _, shell := newTestUi()

	ui.dispatchEvent(engine.Event{
		Type: engine.EventVideoDimensionsChanged,
		Data: engine.Dimensions{Width: 1280, Height: 720},
	})

	assert.Equal(t, []int{1280, 720}, shell.resizedTo)
}

func TestDispatchStateChangeResyncsPause(t *testing.T) {
	ui, _, shell := newTestUi()

	ui.dispatchEvent(engine.Event{Type: engine.EventStateChanged, Data: engine.StatePaused})
	assert.True(t, ui.actions.get(ActionPause).BoolState)
	assert.Equal(t, engine.StatePaused, shell.playbackStatus)

	ui.dispatchEvent(engine.Event{Type: engine.EventStateChanged, Data: engine.StatePlaying})
	assert.False(t, ui.actions.get(ActionPause).BoolState)
}

func TestDispatchVolumeChange(t *testing.T) {
	ui, _, shell := newTestUi()
	ui.dispatchEvent(engine.Event{Type: engine.EventVolumeChanged, Data: 72.0})
	assert.Equal(t, 72, shell.volumeDisplay)
}

func TestDispatchPlayerErrorQuits(t *testing.T) {
	ui, ctrl, shell := newTestUi()

	ui.dispatchEvent(engine.Event{Type: engine.EventError, Data: "decode failed"})

	assert.Equal(t, 1, shell.stopCount)
	assert.Len(t, ctrl.callsNamed("WriteLastKnownMediaPosition"), 1)
}

func TestDispatchUnknownEventIsIgnored(t *testing.T) {
	ui, ctrl, shell := newTestUi()
	ui.dispatchEvent(engine.Event{Type: engine.EventType(99)})
	assert.Empty(t, ctrl.calls)
	assert.Equal(t, 0, shell.stopCount)
}
