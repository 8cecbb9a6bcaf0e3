// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"fmt"
	"time"

	"github.com/supersonic-app/go-mpv"

	"github.com/hwills/lumiere/logger"
)

// Player wraps a libmpv instance. Commands and queries may be called from the
// UI goroutine only; translated playback events are delivered on the channel
// returned by Events() and are meant to be drained by a bridge on another
// goroutine.
type Player struct {
	instance      *mpv.Mpv
	mpvEvents     chan *mpv.Event
	events        chan Event
	eventLoopDone chan struct{}
	logger        logger.LoggerInterface

	playlist      []string
	currentURI    string
	subtitleURI   string
	visualization string

	positions *positionCache

	// remote-control callbacks, registered before EventLoop runs
	cbOnPlaying     []func()
	cbOnPaused      []func()
	cbOnStopped     []func()
	cbOnTitleChange []func(title string)
}

func NewPlayer(logger logger.LoggerInterface, cachePath string) (player *Player, err error) {
	mpvInstance := mpv.Create()

	if err = mpvInstance.SetOptionString("input-default-bindings", "no"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}
	if err = mpvInstance.SetOptionString("input-vo-keyboard", "no"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}
	// the terminal belongs to the UI, the video window to mpv
	if err = mpvInstance.SetOptionString("terminal", "no"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}
	if err = mpvInstance.SetOptionString("osc", "no"); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}

	if err = mpvInstance.Initialize(); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}

	player = &Player{
		instance:      mpvInstance,
		mpvEvents:     make(chan *mpv.Event),
		events:        make(chan Event, 100),
		eventLoopDone: make(chan struct{}),
		logger:        logger,
		positions:     newPositionCache(cachePath, logger),
	}

	go player.mpvEngineEventHandler(mpvInstance)
	return
}

func (p *Player) mpvEngineEventHandler(instance *mpv.Mpv) {
	for {
		evt := instance.WaitEvent(1)
		select {
		case p.mpvEvents <- evt:
		case <-p.eventLoopDone:
			return
		}
	}
}

// Events is the event source drained by the UI-side bridge. It is closed when
// the engine shuts down.
func (p *Player) Events() <-chan Event {
	return p.events
}

func (p *Player) Name() string {
	return "lumiere"
}

// Quit stops event translation and tears down the mpv instance. Safe to call
// after the event loop already exited on its own, e.g. when the user closed
// the mpv window.
func (p *Player) Quit() {
	p.signalQuit()
	p.instance.TerminateDestroy()
}

func (p *Player) signalQuit() {
	select {
	case p.mpvEvents <- nil:
	case <-p.eventLoopDone:
	}
}

// LoadPlaylist starts playback of the first URI and queues the rest.
func (p *Player) LoadPlaylist(uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	p.playlist = uris[1:]
	return p.LoadURI(uris[0])
}

func (p *Player) LoadURI(uri string) error {
	p.currentURI = uri
	p.subtitleURI = ""
	return p.instance.Command([]string{"loadfile", uri})
}

func (p *Player) Stop() error {
	p.logger.Printf("engine: stopping (user)")
	return p.instance.Command([]string{"stop"})
}

func (p *Player) Seek(direction SeekDirection, offset time.Duration) error {
	seconds := offset.Seconds()
	if direction == SeekBackward {
		seconds = -seconds
	}
	return p.instance.Command([]string{"seek", fmt.Sprintf("%f", seconds), "relative"})
}

// TogglePause receives the currently committed pause state and applies its
// inversion. The caller commits the new state only after this returns nil.
func (p *Player) TogglePause(paused bool) error {
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, !paused)
}

func (p *Player) ToggleMute(muted bool) error {
	return p.instance.SetProperty("mute", mpv.FORMAT_FLAG, !muted)
}

func (p *Player) IncreaseVolume() error {
	return p.adjustVolume(volumeStep)
}

func (p *Player) DecreaseVolume() error {
	return p.adjustVolume(-volumeStep)
}

const volumeStep = 5

func (p *Player) adjustVolume(increment int64) error {
	volume, err := p.getPropertyInt64("volume")
	if err != nil {
		return err
	}

	volume += increment
	if volume > 100 {
		volume = 100
	} else if volume < 0 {
		volume = 0
	}
	return p.instance.SetProperty("volume", mpv.FORMAT_INT64, volume)
}

// SetAudioTrackIndex selects an audio stream by its position in the media
// info snapshot. Index -1 disables audio.
func (p *Player) SetAudioTrackIndex(index int) error {
	if index < 0 {
		return p.instance.SetPropertyString("aid", "no")
	}
	// mpv track ids are 1-based
	return p.instance.SetProperty("aid", mpv.FORMAT_INT64, int64(index+1))
}

func (p *Player) SetVideoTrackIndex(index int) error {
	if index < 0 {
		return p.instance.SetPropertyString("vid", "no")
	}
	return p.instance.SetProperty("vid", mpv.FORMAT_INT64, int64(index+1))
}

// ConfigureSubtitleTrack applies a subtitle selection. nil disables
// subtitles.
func (p *Player) ConfigureSubtitleTrack(track *SubtitleTrack) error {
	if track == nil {
		p.subtitleURI = ""
		return p.instance.SetPropertyString("sid", "no")
	}
	switch track.Kind {
	case SubtitleExternal:
		// sub-add appends a track every time; re-adding the configured file
		// would grow the track list and re-trigger media info updates
		if track.URI == p.subtitleURI {
			return nil
		}
		p.subtitleURI = track.URI
		return p.instance.Command([]string{"sub-add", track.URI, "select"})
	default:
		return p.instance.SetProperty("sid", mpv.FORMAT_INT64, int64(track.Index+1))
	}
}

// SetVisualization enables the named audio visualization effect, or disables
// visualization when name is empty.
func (p *Player) SetVisualization(name string) error {
	p.visualization = name
	if name == "" {
		return p.instance.SetPropertyString("lavfi-complex", "")
	}
	filter := fmt.Sprintf("[aid1] asplit [ao][vis]; [vis] %s [vo]", name)
	return p.instance.SetPropertyString("lavfi-complex", filter)
}

// Visualizations lists the effects available for audio-only media. The list
// is static, independent of the loaded media.
func (p *Player) Visualizations() []Visualization {
	return []Visualization{
		{Name: "avectorscope", Description: "Vector scope"},
		{Name: "showcqt", Description: "Constant Q transform"},
		{Name: "showspectrum", Description: "Spectrum"},
		{Name: "showwaves", Description: "Waveform"},
	}
}

// MediaInfo queries a fresh metadata snapshot, or nil when no media is
// loaded.
func (p *Player) MediaInfo() *MediaInfo {
	count, err := p.getPropertyInt64("track-list/count")
	if err != nil || count == 0 {
		return nil
	}

	info := &MediaInfo{}
	if title, err := p.getPropertyString("media-title"); err == nil {
		info.Title = title
	}
	if duration, err := p.getPropertyDouble("duration"); err == nil {
		info.Duration = time.Duration(duration * float64(time.Second))
	}

	for i := int64(0); i < count; i++ {
		prefix := fmt.Sprintf("track-list/%d/", i)
		kind, err := p.getPropertyString(prefix + "type")
		if err != nil {
			p.logger.PrintError("MediaInfo: track type", err)
			continue
		}
		switch kind {
		case "audio":
			stream := AudioStream{}
			if channels, err := p.getPropertyInt64(prefix + "demux-channel-count"); err == nil {
				stream.Channels = int(channels)
			}
			if lang, err := p.getPropertyString(prefix + "lang"); err == nil {
				stream.Language = lang
			}
			info.AudioStreams = append(info.AudioStreams, stream)
		case "video":
			stream := VideoStream{}
			if w, err := p.getPropertyInt64(prefix + "demux-w"); err == nil {
				stream.Width = int(w)
			}
			if h, err := p.getPropertyInt64(prefix + "demux-h"); err == nil {
				stream.Height = int(h)
			}
			info.VideoStreams = append(info.VideoStreams, stream)
		case "sub":
			stream := SubtitleStream{}
			if title, err := p.getPropertyString(prefix + "title"); err == nil {
				stream.Title = title
			}
			if lang, err := p.getPropertyString(prefix + "lang"); err == nil {
				stream.Language = lang
			}
			info.SubtitleStreams = append(info.SubtitleStreams, stream)
		}
	}
	return info
}

func (p *Player) Position() time.Duration {
	position, err := p.getPropertyDouble("playback-time")
	if err != nil {
		return 0
	}
	return time.Duration(position * float64(time.Second))
}

func (p *Player) CurrentURI() string {
	return p.currentURI
}

func (p *Player) SubtitleURI() string {
	return p.subtitleURI
}

// DumpPipeline logs a snapshot of the engine's demuxer and output state,
// tagged for grepping.
func (p *Player) DumpPipeline(tag string) {
	for _, name := range []string{"track-list/count", "vo-configured", "audio-device", "hwdec-current"} {
		value, err := p.instance.GetProperty(name, mpv.FORMAT_STRING)
		if err != nil {
			p.logger.Printf("dump(%s): %s unavailable: %v", tag, name, err)
			continue
		}
		p.logger.Printf("dump(%s): %s=%v", tag, name, value)
	}
}

// WriteLastKnownMediaPosition persists the playback position of the current
// URI so a later load can resume it. Safe to call at any point of the
// shutdown sequence.
func (p *Player) WriteLastKnownMediaPosition() {
	if p == nil || p.currentURI == "" {
		return
	}
	p.positions.set(p.currentURI, p.Position())
	if err := p.positions.save(); err != nil {
		p.logger.PrintError("WriteLastKnownMediaPosition", err)
	}
}

// RefreshVideoRenderer reinitializes the video output for the current track.
func (p *Player) RefreshVideoRenderer() {
	if err := p.instance.Command([]string{"video-reload"}); err != nil {
		p.logger.PrintError("RefreshVideoRenderer", err)
	}
}

func (p *Player) OnPlaying(cb func()) {
	p.cbOnPlaying = append(p.cbOnPlaying, cb)
}

func (p *Player) OnPaused(cb func()) {
	p.cbOnPaused = append(p.cbOnPaused, cb)
}

func (p *Player) OnStopped(cb func()) {
	p.cbOnStopped = append(p.cbOnStopped, cb)
}

func (p *Player) OnTitleChange(cb func(title string)) {
	p.cbOnTitleChange = append(p.cbOnTitleChange, cb)
}

func (p *Player) IsPaused() (bool, error) {
	return p.getPropertyBool("pause")
}

func (p *Player) Volume() (int64, error) {
	return p.getPropertyInt64("volume")
}

func (p *Player) SetVolume(percent int64) error {
	if percent > 100 {
		percent = 100
	} else if percent < 0 {
		percent = 0
	}
	return p.instance.SetProperty("volume", mpv.FORMAT_INT64, percent)
}
