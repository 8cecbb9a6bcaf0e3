// Copyright 2026 The Lumiere Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
)

func (s *tviewShell) handleInput(event *tcell.EventKey) *tcell.EventKey {
	// the URI prompt gets the keyboard to itself
	if s.app.GetFocus() == s.uriInput {
		return event
	}

	if event.Key() == tcell.KeyEscape {
		s.ui.Activate(ActionRestore)
		return nil
	}

	switch event.Rune() {
	case '1':
		s.showPage(PageTracks)

	case '2':
		s.showPage(PageLog)

	case 'p', ' ':
		s.ui.Propose(ActionPause, "")

	case 'm':
		s.ui.Propose(ActionAudioMute, "")

	case 'f':
		s.ui.Propose(ActionFullscreen, "")

	case '.':
		s.ui.Activate(ActionSeekForward)

	case ',':
		s.ui.Activate(ActionSeekBackward)

	case '+', '=':
		s.ui.Activate(ActionVolumeIncrease)

	case '-':
		s.ui.Activate(ActionVolumeDecrease)

	case 'o':
		s.ui.Activate(ActionOpenMedia)

	case 'O':
		s.ui.Activate(ActionOpenSubtitle)

	case 'd':
		s.ui.Activate(ActionDumpPipeline)

	case '?':
		s.ui.Activate(ActionAbout)

	case 'q', 'Q':
		s.ui.Activate(ActionQuitName)

	default:
		return event
	}

	return nil
}

func (s *tviewShell) showPage(name string) {
	s.pages.SwitchToPage(name)
	_, prim := s.pages.GetFrontPage()
	s.app.SetFocus(prim)
}
