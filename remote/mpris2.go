// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"errors"
	"math"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"github.com/hwills/lumiere/logger"
)

// MPRIS PlaybackStatus values, per the spec.
const (
	statusPlaying = "Playing"
	statusPaused  = "Paused"
	statusStopped = "Stopped"
)

// propSetter is the slice of prop.Properties we need; tests substitute a
// recording fake.
type propSetter interface {
	SetMust(iface, property string, v interface{})
}

type MprisPlayer struct {
	dbus   *dbus.Conn
	player ControlledPlayer
	props  propSetter
	logger logger.LoggerInterface
}

func RegisterMprisPlayer(player ControlledPlayer, logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return
	}

	mpp = &MprisPlayer{
		dbus:   conn,
		player: player,
		logger: logger_,
	}

	err = conn.ExportAll(mpp, "/org/mpris/MediaPlayer2", "org.mpris.MediaPlayer2.Player")
	if err != nil {
		return
	}

	metadata := map[string]interface{}{
		"mpris:trackid": "",
		"mpris:length":  int64(0),
		"xesam:title":   "",
	}

	var mprisPlayer = map[string]*prop.Prop{
		"CanControl":     {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: metadata, Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Volume":         {Value: float64(0.0), Writable: true, Emit: prop.EmitTrue, Callback: mpp.volumeChange},
		"PlaybackStatus": {Value: statusStopped, Writable: false, Emit: prop.EmitTrue, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "lumiere", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: "", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: "", Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	props, err := prop.Export(
		conn,
		"/org/mpris/MediaPlayer2",
		map[string]map[string]*prop.Prop{
			"org.mpris.MediaPlayer2":        mediaPlayer,
			"org.mpris.MediaPlayer2.Player": mprisPlayer,
		},
	)
	if err != nil {
		return
	}
	mpp.props = props

	n := &introspect.Node{
		Name: "/org/mpris/MediaPlayer2",
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       "org.mpris.MediaPlayer2.Player",
				Methods:    introspect.Methods(mpp),
				Properties: props.Introspection("org.mpris.MediaPlayer2.Player"), // we implement the standard interface
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), "/org/mpris/MediaPlayer2", "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return
	}

	player.OnTitleChange(mpp.onTitleChange)
	mpp.watchPlaybackState()

	// our unique name
	name := "org.mpris.MediaPlayer2.lumiere"
	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		err = errors.New("name already owned")
		return
	}
	return
}

// watchPlaybackState mirrors engine state transitions into the MPRIS
// PlaybackStatus property so desktop widgets track play/pause/stop.
func (m *MprisPlayer) watchPlaybackState() {
	m.player.OnPlaying(func() { m.setPlaybackStatus(statusPlaying) })
	m.player.OnPaused(func() { m.setPlaybackStatus(statusPaused) })
	m.player.OnStopped(func() { m.setPlaybackStatus(statusStopped) })
}

func (m *MprisPlayer) setPlaybackStatus(status string) {
	m.props.SetMust("org.mpris.MediaPlayer2.Player", "PlaybackStatus", status)
}

func (m *MprisPlayer) Close() {
	if err := m.dbus.Close(); err != nil {
		m.logger.PrintError("mpp Close", err)
	}
}

// Mandatory functions
func (m *MprisPlayer) Stop() {
	if err := m.player.Stop(); err != nil {
		m.logger.PrintError("mpp Stop", err)
	}
}

// set paused
func (m *MprisPlayer) Pause() {
	if paused, err := m.player.IsPaused(); err != nil {
		m.logger.PrintError("mpp IsPaused", err)
	} else if !paused {
		if err = m.player.TogglePause(paused); err != nil {
			m.logger.PrintError("mpp Pause", err)
		}
	}
}

// set playing
func (m *MprisPlayer) Play() {
	if paused, err := m.player.IsPaused(); err != nil {
		m.logger.PrintError("mpp IsPaused", err)
	} else if paused {
		if err = m.player.TogglePause(paused); err != nil {
			m.logger.PrintError("mpp Play", err)
		}
	}
}

func (m *MprisPlayer) PlayPause() {
	if paused, err := m.player.IsPaused(); err != nil {
		m.logger.PrintError("mpp IsPaused", err)
	} else if err = m.player.TogglePause(paused); err != nil {
		m.logger.PrintError("mpp PlayPause", err)
	}
}

func (m *MprisPlayer) OpenUri(uri string) {
	if err := m.player.LoadURI(uri); err != nil {
		m.logger.PrintError("mpp OpenUri", err)
	}
}

func (m *MprisPlayer) Next() {
	// single-item playlists only, nothing to skip to
}
func (m *MprisPlayer) Previous() {
}
func (m *MprisPlayer) Seek(int) {
	// TODO wire to engine.Seek once position tracking is exported here
}
func (m *MprisPlayer) Seeked(int) {
}
func (m *MprisPlayer) SetPosition(string, int) {
}

func (m *MprisPlayer) volumeChange(c *prop.Change) *dbus.Error {
	fVol := c.Value.(float64)

	// convert to %
	percentVol := int64(math.Round(fVol * 100))
	if err := m.player.SetVolume(percentVol); err != nil {
		m.logger.PrintError("volumeChange", err)
	} else {
		m.logger.Printf("mpris: adjust volume %f -> %d%%", fVol, percentVol)
	}
	return nil
}

func (m *MprisPlayer) onTitleChange(title string) {
	metadata := map[string]interface{}{
		"mpris:trackid": "",
		"mpris:length":  int64(m.player.Position().Microseconds()),
		"xesam:title":   title,
	}

	err := m.dbus.Emit("/org/mpris/MediaPlayer2", "org.freedesktop.DBus.Properties.PropertiesChanged",
		"org.mpris.MediaPlayer2.Player", map[string]map[string]interface{}{
			"Metadata": metadata,
		}, []string{})

	if err != nil {
		m.logger.PrintError("mpris: Emit PropertiesChanged", err)
	}
}
