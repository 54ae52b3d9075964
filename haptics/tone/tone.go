// Package tone plays short tones in place of haptic impacts on machines
// without a vibration motor.
package tone

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snekarcade/haptics"
)

const sampleRate = beep.SampleRate(44100)

type Sink struct {
	sr beep.SampleRate
}

// New initializes the speaker. Callers treat an error as "no sound" and fall
// back to haptics.Nop.
func New() (*Sink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Sink{sr: sampleRate}, nil
}

func (s *Sink) Trigger(f haptics.Feedback) {
	streamer, err := s.streamer(f)
	if err != nil {
		log.Printf("tone: %v", err)
		return
	}
	speaker.Play(streamer)
}

func (s *Sink) streamer(f haptics.Feedback) (beep.Streamer, error) {
	switch f {
	case haptics.Light:
		return s.tone(1320, 20*time.Millisecond)
	case haptics.Medium:
		return s.tone(880, 50*time.Millisecond)
	default:
		first, err := s.tone(220, 90*time.Millisecond)
		if err != nil {
			return nil, err
		}
		second, err := s.tone(165, 140*time.Millisecond)
		if err != nil {
			return nil, err
		}
		return beep.Seq(first, beep.Silence(s.sr.N(40*time.Millisecond)), second), nil
	}
}

func (s *Sink) tone(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(s.sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(s.sr.N(d), sine), nil
}

func (s *Sink) Close() {
	speaker.Close()
}
