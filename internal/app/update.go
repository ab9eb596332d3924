package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/webdesk/webdesk/internal/config"
	"github.com/webdesk/webdesk/internal/wm"
)

// TickMsg drives animations, page refresh and the adaptive frame rate.
type TickMsg time.Time

// Init implements tea.Model.
func (s *Shell) Init() tea.Cmd {
	return s.tickCmd()
}

// tickCmd schedules the next frame: InteractionFPS during gestures,
// IdleFPS after enough unchanged frames, NormalFPS otherwise.
func (s *Shell) tickCmd() tea.Cmd {
	fps := config.NormalFPS
	switch {
	case s.WM.GestureActive():
		fps = config.InteractionFPS
	case s.idleFrames >= config.IdleThresholdFrames:
		fps = config.IdleFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update implements tea.Model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		changed := s.advanceAnimations(now)
		if s.cleanupNotifications(now) {
			changed = true
		}
		s.refreshVisible()
		s.updateStats(now)

		if changed || s.WM.GestureActive() || len(s.Notifications) > 0 {
			s.idleFrames = 0
		} else {
			s.idleFrames++
		}
		return s, s.tickCmd()

	case tea.WindowSizeMsg:
		s.Width = msg.Width
		s.Height = msg.Height
		s.WM.Resize(s.viewportPx())
		s.idleFrames = 0
		return s, nil

	case tea.FocusMsg, tea.BlurMsg:
		return s, nil
	}

	s.idleFrames = 0
	if s.inputHandler != nil {
		return s.inputHandler(msg, s)
	}
	return s, nil
}

// refreshVisible lets visible page components re-render their surfaces.
func (s *Shell) refreshVisible() {
	for _, f := range s.Container.Frames() {
		if f.Minimized || f.Closing {
			continue
		}
		w, ok := s.WM.Get(f.ID)
		if !ok {
			continue
		}
		if r, ok := w.Component.(wm.Refresher); ok {
			r.Refresh()
		}
	}
}

func (s *Shell) updateStats(now time.Time) {
	if now.Sub(s.lastStatsUpdate) < config.StatsUpdateInterval {
		return
	}
	s.lastStatsUpdate = now

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.RAMPercent = vm.UsedPercent
	}
}
