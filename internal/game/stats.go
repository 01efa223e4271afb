package game

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// frameStats averages frame rate and visible points between log lines.
type frameStats struct {
	every   rate.Sometimes
	frames  int
	elapsed float64
	points  int

	// FPS is the last logged average.
	FPS float64
}

func newFrameStats(interval time.Duration) *frameStats {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &frameStats{every: rate.Sometimes{Interval: interval}}
}

func (s *frameStats) tick(delta float64, visible int) {
	s.frames++
	s.elapsed += delta
	s.points += visible
	s.every.Do(s.flush)
}

func (s *frameStats) flush() {
	if s.elapsed <= 0 || s.frames == 0 {
		return
	}
	s.FPS = float64(s.frames) / s.elapsed
	log.Debug().
		Float64("fps", s.FPS).
		Int("avg_visible", s.points/s.frames).
		Msg("frame stats")
	s.frames, s.elapsed, s.points = 0, 0, 0
}
