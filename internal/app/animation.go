package app

import (
	"time"

	"github.com/webdesk/webdesk/internal/wm"
)

// Animation tracks one timed transition: a closing window's exit, or a
// notification's lifetime. Frame is nil for non-window animations.
type Animation struct {
	Frame     *wm.Frame
	StartTime time.Time
	Duration  time.Duration
	Complete  bool
}

// NewAnimation starts an animation now.
func NewAnimation(frame *wm.Frame, duration time.Duration) *Animation {
	return &Animation{
		Frame:     frame,
		StartTime: time.Now(),
		Duration:  duration,
	}
}

// Progress returns the animation position in [0, 1] at the given time.
func (a *Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.StartTime)) / float64(a.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Done reports whether the animation has run its full duration.
func (a *Animation) Done(now time.Time) bool {
	return a.Complete || now.Sub(a.StartTime) >= a.Duration
}

// advanceAnimations completes finished close animations, detaching their
// frames through the manager. Returns true when anything changed.
func (s *Shell) advanceAnimations(now time.Time) bool {
	if len(s.Animations) == 0 {
		return false
	}

	changed := false
	kept := s.Animations[:0]
	for _, anim := range s.Animations {
		if anim.Done(now) {
			anim.Complete = true
			if anim.Frame != nil {
				s.WM.FinishClose(anim.Frame.ID)
			}
			changed = true
			continue
		}
		kept = append(kept, anim)
	}
	s.Animations = kept

	// Animations redraw every frame while running.
	return changed || len(s.Animations) > 0
}

// animatingFrame reports whether the frame has a running close animation.
func (s *Shell) animatingFrame(f *wm.Frame) bool {
	for _, anim := range s.Animations {
		if anim.Frame == f && !anim.Complete {
			return true
		}
	}
	return false
}
