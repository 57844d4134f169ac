package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Stealth-Sense/internal/logger"
)

const sampleRate = beep.SampleRate(44100)

// tone is one segment of a cue.
type tone struct {
	freq float64
	dur  time.Duration
}

// cueTones are the note sequences for each cue.
var cueTones = map[Cue][]tone{
	CueAlarm:   {{880, 90 * time.Millisecond}, {660, 90 * time.Millisecond}, {880, 90 * time.Millisecond}},
	CueEMP:     {{220, 60 * time.Millisecond}, {330, 60 * time.Millisecond}, {440, 60 * time.Millisecond}, {660, 120 * time.Millisecond}},
	CueCollect: {{988, 50 * time.Millisecond}, {1319, 110 * time.Millisecond}},
	CueWin:     {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1047, 220 * time.Millisecond}},
}

// BeepPlayer mixes cues onto the system speaker.
type BeepPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewPlayer returns a speaker-backed player, or Nop when enabled is false or
// the audio device cannot be opened.
func NewPlayer(enabled bool) Player {
	log := logger.Component("audio")
	if !enabled {
		log.Debug("audio disabled by config")
		return Nop{}
	}
	p, err := NewBeepPlayer(0.35)
	if err != nil {
		log.WithError(err).Warn("audio unavailable, continuing silently")
		return Nop{}
	}
	log.WithFields(logrus.Fields{"rate": int(sampleRate)}).Info("audio ready")
	return p
}

// NewBeepPlayer opens the speaker and starts an empty mixer.
func NewBeepPlayer(volume float64) (*BeepPlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	p := &BeepPlayer{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(p.mixer)
	return p, nil
}

// Play queues c on the mixer.
func (p *BeepPlayer) Play(c Cue) {
	s := cueStreamer(c, p.volume)
	if s == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close clears the mixer and releases the device.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// cueStreamer builds the finite stream for c, or nil for CueNone.
func cueStreamer(c Cue, volume float64) beep.Streamer {
	tones, ok := cueTones[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		parts = append(parts, fade(beep.Take(sampleRate.N(t.dur), sine), sampleRate.N(t.dur)))
	}
	if len(parts) == 0 {
		return nil
	}
	return withVolume(beep.Seq(parts...), volume)
}

// fade ramps the last quarter of a segment down to avoid clicks.
func fade(s beep.Streamer, total int) beep.Streamer {
	release := total / 4
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if left := total - pos; left < release && release > 0 {
				g := float64(left) / float64(release)
				samples[i][0] *= g
				samples[i][1] *= g
			}
			pos++
		}
		return n, ok
	})
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
