package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

const (
	SampleRate beep.SampleRate = 44100

	successFreq = 880
	failureFreq = 196
	chimeLength = 180 * time.Millisecond
)

// Chime is a mono sine at freq that decays to silence over d.
func Chime(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(sr)
			env := math.Exp(-6 * t / d.Seconds())
			v := volume * env * math.Sin(2*math.Pi*freq*t)
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}

// Player plays feedback chimes on the speaker. The zero value is silent.
type Player struct {
	sr     beep.SampleRate
	volume float64
	ready  bool
}

// NewPlayer opens the speaker. On failure it returns a silent player and the
// error, so callers can log and carry on.
func NewPlayer(volume float64) (*Player, error) {
	p := &Player{sr: SampleRate, volume: volume}
	if err := speaker.Init(p.sr, p.sr.N(time.Second/20)); err != nil {
		return p, err
	}
	p.ready = true
	return p, nil
}

func (p *Player) Enabled() bool { return p != nil && p.ready }

func (p *Player) play(freq float64) {
	if !p.Enabled() {
		return
	}
	speaker.Play(Chime(p.sr, freq, chimeLength, p.volume))
}

func (p *Player) Regenerated(params galaxy.Parameters, took time.Duration) {
	log.Trace().Int("count", params.Count).Dur("took", took).Msg("chime")
	p.play(successFreq)
}

func (p *Player) Rejected(error) { p.play(failureFreq) }

// Close stops anything still playing.
func (p *Player) Close() {
	if !p.Enabled() {
		return
	}
	speaker.Clear()
}
