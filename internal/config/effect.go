package config

import "fmt"

// EffectConfig holds the radio effect defaults. CLI flags override these per run.
type EffectConfig struct {
	HighpassHz float64 `yaml:"highpass_hz"`  // cut below (try 80-200)
	LowpassHz  float64 `yaml:"lowpass_hz"`   // cut above (try 5000-8000)
	MidBoostHz float64 `yaml:"mid_boost_hz"` // peaking EQ center (try 1000-1500)
	MidBoostDB float64 `yaml:"mid_boost_db"` // boost amount (try 0.5-3)
	BoostQ     float64 `yaml:"boost_q"`      // higher = narrower
}

// Validate checks the effect parameters independent of any sample rate.
func (e EffectConfig) Validate() error {
	if e.HighpassHz <= 0 {
		return fmt.Errorf("effect.highpass_hz must be positive, got %v", e.HighpassHz)
	}
	if e.LowpassHz <= e.HighpassHz {
		return fmt.Errorf("effect.lowpass_hz (%v) must be above effect.highpass_hz (%v)", e.LowpassHz, e.HighpassHz)
	}
	if e.MidBoostHz <= 0 {
		return fmt.Errorf("effect.mid_boost_hz must be positive, got %v", e.MidBoostHz)
	}
	if e.BoostQ <= 0 {
		return fmt.Errorf("effect.boost_q must be positive, got %v", e.BoostQ)
	}
	return nil
}
