package audio

import (
	"time"

	"github.com/gopxl/beep"
)

type note struct {
	freq float64
	d    time.Duration
}

func notes(wave Wave, rate beep.SampleRate, ns ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, Shape(Tone(n.freq, n.d, wave, rate), n.d, 5*time.Millisecond, n.d/3, rate))
	}
	return beep.Seq(parts...)
}

func blast(d time.Duration, rate beep.SampleRate) beep.Streamer {
	noise := Shape(Tone(0, d, WaveNoise, rate), d, 2*time.Millisecond, d*2/3, rate)
	thump := Shape(Tone(55, d, WaveSine, rate), d, 2*time.Millisecond, d/2, rate)
	return beep.Mix(gain(noise, 0.6), gain(thump, 0.8))
}

// Sound returns the effect for a cue name, or nil when the cue is silent.
func Sound(cue string, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case "bomb_placed":
		return gain(notes(WaveSquare, rate, note{196, 50 * time.Millisecond}), 0.3)
	case "bomb_detonated":
		return blast(350*time.Millisecond, rate)
	case "block_destroyed":
		return gain(blast(120*time.Millisecond, rate), 0.4)
	case "enemy_killed":
		return gain(notes(WaveSaw, rate,
			note{660, 60 * time.Millisecond},
			note{440, 90 * time.Millisecond}), 0.4)
	case "power_up_collected":
		return gain(notes(WaveSquare, rate,
			note{987.77, 70 * time.Millisecond},
			note{1318.51, 160 * time.Millisecond}), 0.35)
	case "power_up_lost":
		return gain(notes(WaveSaw, rate, note{110, 200 * time.Millisecond}), 0.4)
	case "stage_cleared":
		return gain(notes(WaveSquare, rate,
			note{523.25, 100 * time.Millisecond},
			note{659.25, 100 * time.Millisecond},
			note{783.99, 100 * time.Millisecond},
			note{1046.5, 250 * time.Millisecond}), 0.35)
	case "player_died":
		return gain(notes(WaveSaw, rate,
			note{392, 150 * time.Millisecond},
			note{311.13, 150 * time.Millisecond},
			note{261.63, 300 * time.Millisecond}), 0.45)
	case "time_up", "exit_penalty":
		return gain(notes(WaveSquare, rate,
			note{880, 120 * time.Millisecond},
			note{660, 120 * time.Millisecond},
			note{880, 120 * time.Millisecond},
			note{660, 120 * time.Millisecond}), 0.3)
	case "game_over":
		return gain(notes(WaveSine, rate,
			note{261.63, 300 * time.Millisecond},
			note{196, 300 * time.Millisecond},
			note{130.81, 600 * time.Millisecond}), 0.5)
	}
	return nil
}
