// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"github.com/supersonic-app/go-mpv"
)

// reply_userdata tags so property-change events identify themselves
const (
	obsPlaybackTime = iota + 1
	obsVolume
	obsPause
	obsCoreIdle
	obsWidth
	obsHeight
	obsTrackCount
	obsMediaTitle
)

// EventLoop translates raw mpv events into playback Events on p.events. It
// runs until Quit() injects the nil sentinel or mpv reports shutdown, then
// closes the event channel so the consumer sees the disconnect.
func (p *Player) EventLoop() {
	observed := []struct {
		id     uint64
		name   string
		format mpv.Format
	}{
		{obsPlaybackTime, "playback-time", mpv.FORMAT_INT64},
		{obsVolume, "volume", mpv.FORMAT_INT64},
		{obsPause, "pause", mpv.FORMAT_FLAG},
		{obsCoreIdle, "core-idle", mpv.FORMAT_FLAG},
		{obsWidth, "dwidth", mpv.FORMAT_INT64},
		{obsHeight, "dheight", mpv.FORMAT_INT64},
		{obsTrackCount, "track-list/count", mpv.FORMAT_INT64},
		{obsMediaTitle, "media-title", mpv.FORMAT_STRING},
	}
	for _, o := range observed {
		if err := p.instance.ObserveProperty(o.id, o.name, o.format); err != nil {
			p.logger.PrintError("EventLoop: observe "+o.name, err)
		}
	}

	defer close(p.events)
	defer close(p.eventLoopDone)

	for evt := range p.mpvEvents {
		if evt == nil {
			// quit signal
			break
		}

		switch evt.Event_Id {
		case mpv.EVENT_PROPERTY_CHANGE:
			p.handlePropertyChange(evt.Reply_Userdata)

		case mpv.EVENT_FILE_LOADED:
			p.restoreMediaPosition()
			p.sendEvent(EventMediaInfoUpdated, nil)
			p.emitStateChange()
			if title, err := p.getPropertyString("media-title"); err == nil {
				for _, cb := range p.cbOnTitleChange {
					cb(title)
				}
			}

		case mpv.EVENT_END_FILE:
			if len(p.playlist) > 0 {
				next := p.playlist[0]
				p.playlist = p.playlist[1:]
				if err := p.LoadURI(next); err != nil {
					p.logger.PrintError("EventLoop: load next", err)
				}
				continue
			}
			p.sendEvent(EventStateChanged, StateStopped)
			p.sendEvent(EventEndOfPlaylist, nil)
			for _, cb := range p.cbOnStopped {
				cb()
			}

		case mpv.EVENT_SHUTDOWN:
			p.logger.Printf("engine: mpv shut down")
			return

		case mpv.EVENT_IDLE, mpv.EVENT_NONE, mpv.EVENT_START_FILE:
			continue

		default:
			p.logger.Printf("engine: unhandled event id %v", evt.Event_Id)
		}
	}
}

func (p *Player) handlePropertyChange(id uint64) {
	switch id {
	case obsPlaybackTime:
		p.sendEvent(EventPositionUpdated, nil)

	case obsVolume:
		volume, err := p.getPropertyInt64("volume")
		if err != nil {
			return
		}
		p.sendEvent(EventVolumeChanged, float64(volume))

	case obsPause, obsCoreIdle:
		p.emitStateChange()

	case obsWidth, obsHeight:
		width, werr := p.getPropertyInt64("dwidth")
		height, herr := p.getPropertyInt64("dheight")
		if werr != nil || herr != nil || width <= 0 || height <= 0 {
			return
		}
		p.sendEvent(EventVideoDimensionsChanged, Dimensions{Width: int(width), Height: int(height)})

	case obsTrackCount, obsMediaTitle:
		p.sendEvent(EventMediaInfoUpdated, nil)
	}
}

func (p *Player) emitStateChange() {
	idle, err := p.getPropertyBool("core-idle")
	if err != nil {
		return
	}
	paused, err := p.getPropertyBool("pause")
	if err != nil {
		return
	}

	loaded, err := p.getPropertyBool("idle-active")
	if err == nil && loaded {
		p.sendEvent(EventStateChanged, StateStopped)
		for _, cb := range p.cbOnStopped {
			cb()
		}
		return
	}

	switch {
	case paused:
		p.sendEvent(EventStateChanged, StatePaused)
		for _, cb := range p.cbOnPaused {
			cb()
		}
	case !idle:
		p.sendEvent(EventStateChanged, StatePlaying)
		for _, cb := range p.cbOnPlaying {
			cb()
		}
	}
}

func (p *Player) restoreMediaPosition() {
	if p.currentURI == "" {
		return
	}
	position, ok := p.positions.get(p.currentURI)
	if !ok || position <= 0 {
		return
	}
	p.logger.Printf("engine: resuming %s at %s", p.currentURI, position)
	if err := p.instance.SetProperty("playback-time", mpv.FORMAT_DOUBLE, position.Seconds()); err != nil {
		p.logger.PrintError("restoreMediaPosition", err)
	}
}

func (p *Player) sendEvent(typ EventType, data interface{}) {
	p.events <- Event{Type: typ, Data: data}
}
