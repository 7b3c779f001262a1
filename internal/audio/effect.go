// Package audio applies the radio effect to voice recordings and writes them as 16-bit
// PCM WAV under the mod's voice directory.
package audio

import (
	"fmt"
	"math"

	"gflmod/internal/config"
)

const (
	preGain    = 1.2
	kneeLevel  = 0.7
	kneeSlope  = 0.3
	outputTrim = -8.0 // dB
	peakCeil   = 0.95
)

// Params tunes the radio effect.
type Params struct {
	HighpassHz float64
	LowpassHz  float64
	MidBoostHz float64
	MidBoostDB float64
	BoostQ     float64
}

// DefaultParams returns the stock radio voice settings.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultConfig().Effect)
}

// ParamsFromConfig converts the effect section of the config.
func ParamsFromConfig(c config.EffectConfig) Params {
	return Params{
		HighpassHz: c.HighpassHz,
		LowpassHz:  c.LowpassHz,
		MidBoostHz: c.MidBoostHz,
		MidBoostDB: c.MidBoostDB,
		BoostQ:     c.BoostQ,
	}
}

// Validate checks the parameters against a sample rate. Every frequency must sit
// strictly between zero and Nyquist.
func (p Params) Validate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	nyquist := float64(sampleRate) / 2
	for _, f := range []struct {
		name string
		hz   float64
	}{
		{"highpass", p.HighpassHz},
		{"lowpass", p.LowpassHz},
		{"mid boost", p.MidBoostHz},
	} {
		if f.hz <= 0 || f.hz >= nyquist {
			return fmt.Errorf("%s frequency %vHz outside (0, %vHz) for %dHz audio", f.name, f.hz, nyquist, sampleRate)
		}
	}
	if p.BoostQ <= 0 {
		return fmt.Errorf("boost Q must be positive, got %v", p.BoostQ)
	}
	return nil
}

// Stats describes the processed signal.
type Stats struct {
	Peak       float64
	RMS        float64
	Normalized bool // peak was pulled down to the ceiling
}

// softKnee compresses the part of x above the knee.
func softKnee(x float64) float64 {
	if math.Abs(x) <= kneeLevel {
		return x
	}
	sign := math.Copysign(1, x)
	return kneeLevel*sign + kneeSlope*(x-kneeLevel*sign)
}

// ApplyRadioEffect processes every channel in place: band limiting, mid boost, soft
// compression, output trim and peak normalization across all channels.
func ApplyRadioEffect(channels [][]float64, sampleRate int, p Params) (Stats, error) {
	if err := p.Validate(sampleRate); err != nil {
		return Stats{}, err
	}
	sr := float64(sampleRate)
	highpass := ButterworthHighpass(p.HighpassHz, sr)
	lowpass := ButterworthLowpass(p.LowpassHz, sr)
	boost := Peaking(p.MidBoostHz, p.MidBoostDB, p.BoostQ, sr)
	trim := math.Pow(10, outputTrim/20)

	var peak float64
	for _, ch := range channels {
		Cascade(ch, highpass...)
		Cascade(ch, lowpass...)
		boost.Process(ch)
		for i, x := range ch {
			ch[i] = softKnee(x*preGain) * trim
			if a := math.Abs(ch[i]); a > peak {
				peak = a
			}
		}
	}

	var stats Stats
	if peak > peakCeil {
		scale := peakCeil / peak
		for _, ch := range channels {
			for i := range ch {
				ch[i] *= scale
			}
		}
		peak = peakCeil
		stats.Normalized = true
	}

	var sum float64
	var n int
	for _, ch := range channels {
		for _, x := range ch {
			sum += x * x
		}
		n += len(ch)
	}
	if n > 0 {
		stats.RMS = math.Sqrt(sum / float64(n))
	}
	stats.Peak = peak
	return stats, nil
}
