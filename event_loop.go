// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"
	"time"

	"github.com/hwills/lumiere/engine"
	"github.com/hwills/lumiere/logger"
)

type uiActionType int

const (
	// playback event forwarded from the engine, Event is set
	actionForwardedEvent uiActionType = iota
	// fatal or user-requested shutdown
	actionQuit
)

type uiAction struct {
	Type  uiActionType
	Event engine.Event
}

// dispatchQueue is the FIFO between the bridge goroutine and the UI loop.
// It never blocks the producer; a slow UI means the queue grows. Single
// consumer, so ordering is the push ordering.
type dispatchQueue struct {
	mu    sync.Mutex
	items []uiAction
}

func (q *dispatchQueue) Push(a uiAction) {
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()
}

func (q *dispatchQueue) Pop() (uiAction, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return uiAction{}, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}

func (q *dispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// eventBridge moves engine events onto the UI goroutine. A background
// goroutine polls the engine's event channel without blocking, pushes each
// event onto the dispatch queue and issues exactly one wake per event. Each
// wake makes the UI loop drain exactly one queued item, so N events produce N
// dispatch turns in emission order.
type eventBridge struct {
	events   <-chan engine.Event
	queue    *dispatchQueue
	wake     func()
	interval time.Duration
	logger   logger.LoggerInterface

	stop chan struct{}
	done chan struct{}
}

func newEventBridge(events <-chan engine.Event, queue *dispatchQueue, wake func(), interval time.Duration, logger logger.LoggerInterface) *eventBridge {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return &eventBridge{
		events:   events,
		queue:    queue,
		wake:     wake,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (b *eventBridge) Start() {
	go b.run()
}

func (b *eventBridge) run() {
	defer close(b.done)

	for {
		select {
		case <-b.stop:
			return
		default:
		}

		select {
		case event, ok := <-b.events:
			if !ok {
				// losing the engine's event source is fatal: convert it into
				// an ordered shutdown instead of silently stopping
				b.logger.Print("bridge: engine event channel closed")
				b.queue.Push(uiAction{Type: actionQuit})
				b.wake()
				return
			}
			b.queue.Push(uiAction{Type: actionForwardedEvent, Event: event})
			b.wake()
		default:
		}

		time.Sleep(b.interval)
	}
}

// Stop signals the polling goroutine and waits for it with a bounded timeout
// so shutdown never hangs on a stuck bridge.
func (b *eventBridge) Stop(timeout time.Duration) {
	select {
	case <-b.stop:
	default:
		close(b.stop)
	}

	select {
	case <-b.done:
	case <-time.After(timeout):
		b.logger.Print("bridge: timed out waiting for poll goroutine")
	}
}

// dispatchNext is one dispatch turn: take at most one queued item and handle
// it to completion. It runs on the UI goroutine, once per wake.
func (ui *Ui) dispatchNext() {
	action, ok := ui.pending.Pop()
	if !ok {
		return
	}

	if ui.quitting && action.Type != actionQuit {
		// queued events behind an observed Quit are discarded, not processed
		return
	}

	switch action.Type {
	case actionQuit:
		ui.Quit()
	case actionForwardedEvent:
		ui.dispatchEvent(action.Event)
	}
}

func (ui *Ui) dispatchEvent(event engine.Event) {
	switch event.Type {
	case engine.EventMediaInfoUpdated:
		ui.mediaInfoUpdated()

	case engine.EventPositionUpdated:
		ui.positionUpdated()

	case engine.EventVideoDimensionsChanged:
		if d, ok := event.Data.(engine.Dimensions); ok {
			ui.videoDimensionsChanged(d.Width, d.Height)
		}

	case engine.EventStateChanged:
		if state, ok := event.Data.(engine.PlaybackState); ok {
			ui.playbackStateChanged(state)
		}

	case engine.EventVolumeChanged:
		if volume, ok := event.Data.(float64); ok {
			ui.volumeChanged(volume)
		}

	case engine.EventError:
		message, _ := event.Data.(string)
		ui.playerError(message)

	default:
		// unknown event kinds from future engines are fine, just noisy
		ui.logger.Printf("dispatchEvent: unhandled event type %v", event.Type)
	}
}

func (ui *Ui) positionUpdated() {
	ui.shell.SetPositionRangeValue(ui.player.Position().Seconds())
}

func (ui *Ui) videoDimensionsChanged(width, height int) {
	ui.shell.ResizeWindow(width, height)
}

func (ui *Ui) playbackStateChanged(state engine.PlaybackState) {
	// the engine is the source of truth: re-sync the committed pause state
	// with what it reports
	if pause := ui.actions.get(ActionPause); pause != nil {
		pause.BoolState = state == engine.StatePaused
	}
	ui.shell.SetPlaybackStatus(state)
}

func (ui *Ui) volumeChanged(volume float64) {
	ui.shell.SetVolumeDisplay(int(volume))
}

func (ui *Ui) playerError(message string) {
	ui.logger.Printf("Internal player error: %s", message)
	ui.Quit()
}
