// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hwills/lumiere/engine"
	"github.com/hwills/lumiere/logger"
)

// Ui is the single-owner mutable context of the player: action states, the
// dispatch queue and the handles to engine and shell. It is confined to the
// UI goroutine; the bridge goroutine only ever touches the dispatch queue.
type Ui struct {
	player Controller
	shell  Shell
	logger *logger.Logger

	actions *actionStore
	pending *dispatchQueue
	bridge  *eventBridge

	seekForwardOffset  time.Duration
	seekBackwardOffset time.Duration

	quitting     bool
	postInitDone bool
}

// UiOptions carries the config-derived knobs.
type UiOptions struct {
	PollInterval time.Duration
	SeekForward  time.Duration
	SeekBackward time.Duration
}

func InitGui(player *engine.Player, logger *logger.Logger, opts UiOptions) (ui *Ui) {
	ui = &Ui{
		player:  player,
		logger:  logger,
		actions: newActionStore(),
		pending: &dispatchQueue{},

		seekForwardOffset:  opts.SeekForward,
		seekBackwardOffset: opts.SeekBackward,
	}

	shell := ui.createShell()
	ui.shell = shell
	ui.registerActions()
	shell.buildLayout()

	ui.bridge = newEventBridge(player.Events(), ui.pending, shell.Wake, opts.PollInterval, logger)
	return ui
}

// Run starts the bridge and the host loop. Blocks until quit.
func (ui *Ui) Run() error {
	ui.bridge.Start()
	ui.PostInit()
	return ui.shell.Start()
}

const (
	PageTracks  = "tracks"
	PageLog     = "log"
	PageAbout   = "about"
	PageOpenURI = "openuri"
)

// tviewShell is the terminal implementation of Shell. The mpv window renders
// the video; the terminal is the control surface.
type tviewShell struct {
	app   *tview.Application
	pages *tview.Pages

	// top bar
	titleBar        *tview.TextView
	startStopStatus *tview.TextView
	playerStatus    *tview.TextView

	// tracks page
	audioList         *tview.List
	videoList         *tview.List
	subtitleList      *tview.List
	visualizationList *tview.List

	// log page
	logList *tview.List

	// modals
	aboutModal *tview.Modal
	uriInput   *tview.InputField
	uriModal   tview.Primitive
	uriDone    func(uri string, ok bool)

	rootFlex   *tview.Flex
	topBarFlex *tview.Flex
	bottomBar  *tview.TextView
	fullscreen bool

	// status bar state
	volume   int
	position int64
	duration int64

	actionOrder []string
	ui          *Ui
}

func (ui *Ui) createShell() (s *tviewShell) {
	s = &tviewShell{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		volume: 100,
		ui:     ui,
	}

	s.titleBar = tview.NewTextView().
		SetText(fmt.Sprintf("[::b]%s[::-] v%s", clientName, clientVersion)).
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)

	s.startStopStatus = tview.NewTextView().
		SetText("[red::b]Stopped[::-]").
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetScrollable(false)

	s.playerStatus = tview.NewTextView().
		SetText(formatPlayerStatus(100, 0, 0)).
		SetTextAlign(tview.AlignRight).
		SetDynamicColors(true).
		SetScrollable(false)

	s.audioList = s.createTrackList("Audio", ActionAudioTrack)
	s.videoList = s.createTrackList("Video", ActionVideoTrack)
	s.subtitleList = s.createTrackList("Subtitles", ActionSubtitle)
	s.visualizationList = s.createTrackList("Visualization", ActionVisualization)

	s.logList = tview.NewList().ShowSecondaryText(false)

	s.aboutModal = tview.NewModal().
		SetText(fmt.Sprintf("%s v%s\nA control surface for mpv", clientName, clientVersion)).
		AddButtons([]string{"Close"}).
		SetBackgroundColor(tcell.ColorBlack).
		SetDoneFunc(func(int, string) {
			s.pages.HidePage(PageAbout)
		})

	s.uriInput = tview.NewInputField().
		SetLabel("URI: ").
		SetFieldWidth(0)
	s.uriInput.SetDoneFunc(func(key tcell.Key) {
		done := s.uriDone
		s.uriDone = nil
		s.pages.HidePage(PageOpenURI)
		if done == nil {
			return
		}
		if key == tcell.KeyEnter && s.uriInput.GetText() != "" {
			done(s.uriInput.GetText(), true)
		} else {
			done("", false)
		}
	})
	s.uriModal = makeModal(s.uriInput, 80, 3)

	return s
}

func (s *tviewShell) createTrackList(title, actionName string) *tview.List {
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(" " + title + " ")
	list.SetSelectedFunc(func(index int, _ string, selector string, _ rune) {
		s.ui.Propose(actionName, selector)
	})
	return list
}

func (s *tviewShell) buildLayout() {
	s.topBarFlex = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(s.titleBar, 0, 2, false).
		AddItem(s.startStopStatus, 0, 1, false).
		AddItem(s.playerStatus, 24, 0, false)

	tracksFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(s.audioList, 0, 1, true).
		AddItem(s.videoList, 0, 1, false).
		AddItem(s.subtitleList, 0, 1, false).
		AddItem(s.visualizationList, 0, 1, false)

	logFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.logList, 0, 1, true)

	s.pages.AddPage(PageTracks, tracksFlex, true, true).
		AddPage(PageLog, logFlex, true, false).
		AddPage(PageAbout, s.aboutModal, true, false).
		AddPage(PageOpenURI, s.uriModal, true, false)

	s.bottomBar = tview.NewTextView().
		SetText("1 tracks  2 log  o open  p pause  f fullscreen  q quit").
		SetTextAlign(tview.AlignLeft).
		SetScrollable(false)

	s.rootFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.topBarFlex, 1, 0, false).
		AddItem(s.pages, 0, 1, true).
		AddItem(s.bottomBar, 1, 0, false)

	s.rootFlex.SetInputCapture(s.handleInput)

	s.app.SetRoot(s.rootFlex, true).
		SetFocus(s.rootFlex).
		EnableMouse(true)
}

func makeModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func formatPlayerStatus(volume int, position int64, duration int64) string {
	if position < 0 {
		position = 0
	}
	if duration < 0 {
		duration = 0
	}

	positionMin, positionSec := secondsToMinAndSec(position)
	durationMin, durationSec := secondsToMinAndSec(duration)

	return fmt.Sprintf("[%d%%][::b][%02d:%02d/%02d:%02d]", volume, positionMin, positionSec, durationMin, durationSec)
}

// logDrainLoop feeds queued log lines into the log page.
func (s *tviewShell) logDrainLoop() {
	for msg := range s.ui.logger.Prints {
		line := msg
		s.app.QueueUpdateDraw(func() {
			line = time.Now().Local().Format("(15:04:05) ") + line
			s.logList.InsertItem(0, line, "", 0, nil)

			// make sure the log list doesn't grow infinitely
			for s.logList.GetItemCount() > 100 {
				s.logList.RemoveItem(-1)
			}
		})
	}
}

// Shell implementation

func (s *tviewShell) AddAction(action *Action) {
	s.actionOrder = append(s.actionOrder, action.Name)
}

// Wake schedules exactly one dispatch turn. QueueUpdateDraw blocks its caller
// until the UI loop ran the closure, so each wake gets its own goroutine;
// FIFO ordering of events is carried by the dispatch queue, not by the
// wake-ups.
func (s *tviewShell) Wake() {
	go s.app.QueueUpdateDraw(s.ui.dispatchNext)
}

func (s *tviewShell) EnterFullscreen() {
	if s.fullscreen {
		return
	}
	s.fullscreen = true
	s.rootFlex.ResizeItem(s.topBarFlex, 0, 0)
	s.rootFlex.ResizeItem(s.bottomBar, 0, 0)
}

func (s *tviewShell) LeaveFullscreen() {
	if !s.fullscreen {
		return
	}
	s.fullscreen = false
	s.rootFlex.ResizeItem(s.topBarFlex, 1, 0)
	s.rootFlex.ResizeItem(s.bottomBar, 1, 0)
}

func (s *tviewShell) ResizeWindow(width, height int) {
	// the terminal can't follow the video size; surface it instead
	s.ui.logger.Printf("video dimensions: %dx%d", width, height)
}

func (s *tviewShell) SetWindowTitle(title string) {
	s.titleBar.SetText("[::b]" + tview.Escape(title) + "[::-]")
}

func (s *tviewShell) SetPositionRangeEnd(seconds float64) {
	s.duration = int64(seconds)
	s.playerStatus.SetText(formatPlayerStatus(s.volume, s.position, s.duration))
}

func (s *tviewShell) SetPositionRangeValue(seconds float64) {
	s.position = int64(seconds)
	s.playerStatus.SetText(formatPlayerStatus(s.volume, s.position, s.duration))
}

func (s *tviewShell) SetPlaybackStatus(state engine.PlaybackState) {
	switch state {
	case engine.StatePlaying:
		s.startStopStatus.SetText("[green::b]Playing[::-]")
	case engine.StatePaused:
		s.startStopStatus.SetText("[yellow::b]Paused[::-]")
	default:
		s.startStopStatus.SetText("[red::b]Stopped[::-]")
	}
}

func (s *tviewShell) SetVolumeDisplay(percent int) {
	s.volume = percent
	s.playerStatus.SetText(formatPlayerStatus(s.volume, s.position, s.duration))
}

func (s *tviewShell) UpdateSubtitleTrackMenu(section MenuSection) {
	fillList(s.subtitleList, section)
}

func (s *tviewShell) UpdateAudioTrackMenu(section MenuSection) {
	fillList(s.audioList, section)
}

func (s *tviewShell) UpdateVideoTrackMenu(section MenuSection) {
	fillList(s.videoList, section)
}

func (s *tviewShell) UpdateAudioVisualizationMenu(section MenuSection) {
	fillList(s.visualizationList, section)
}

func (s *tviewShell) ClearAudioVisualizationMenu() {
	s.visualizationList.Clear()
}

func fillList(list *tview.List, section MenuSection) {
	list.Clear()
	for _, entry := range section {
		list.AddItem(tview.Escape(entry.Label), entry.Selector, 0, nil)
	}
}

func (s *tviewShell) DialogResult(currentURI string, done func(uri string, ok bool)) {
	s.uriDone = done
	s.uriInput.SetText(currentURI)
	s.pages.ShowPage(PageOpenURI)
	s.pages.SendToFront(PageOpenURI)
	s.app.SetFocus(s.uriInput)
}

func (s *tviewShell) DisplayAboutDialog() {
	s.pages.ShowPage(PageAbout)
	s.pages.SendToFront(PageAbout)
	s.app.SetFocus(s.aboutModal)
}

func (s *tviewShell) Start() error {
	go s.logDrainLoop()
	return s.app.Run()
}

func (s *tviewShell) Stop() {
	s.app.Stop()
}

func (s *tviewShell) PostInit(player Controller) {
	s.SetWindowTitle(player.Name())
}
