package audio

import "math"

// Biquad is a normalized second-order IIR section (a0 == 1), run in transposed direct
// form II.
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Process filters x in place starting from a zero state.
func (q Biquad) Process(x []float64) {
	var z1, z2 float64
	for i, in := range x {
		out := q.B0*in + z1
		z1 = q.B1*in - q.A1*out + z2
		z2 = q.B2*in - q.A2*out
		x[i] = out
	}
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Biquad {
	return Biquad{B0: b0 / a0, B1: b1 / a0, B2: b2 / a0, A1: a1 / a0, A2: a2 / a0}
}

// butterworthQ holds the pole-pair Q values of a 4th-order Butterworth response.
var butterworthQ = [2]float64{
	1 / (2 * math.Cos(math.Pi/8)),
	1 / (2 * math.Cos(3*math.Pi/8)),
}

func lowpassSection(cutoff, sampleRate, q float64) Biquad {
	w0 := 2 * math.Pi * cutoff / sampleRate
	cosW, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	return normalize((1-cosW)/2, 1-cosW, (1-cosW)/2, 1+alpha, -2*cosW, 1-alpha)
}

func highpassSection(cutoff, sampleRate, q float64) Biquad {
	w0 := 2 * math.Pi * cutoff / sampleRate
	cosW, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	return normalize((1+cosW)/2, -(1 + cosW), (1+cosW)/2, 1+alpha, -2*cosW, 1-alpha)
}

// ButterworthHighpass returns a 4th-order high-pass as two cascaded sections.
func ButterworthHighpass(cutoff, sampleRate float64) []Biquad {
	return []Biquad{
		highpassSection(cutoff, sampleRate, butterworthQ[0]),
		highpassSection(cutoff, sampleRate, butterworthQ[1]),
	}
}

// ButterworthLowpass returns a 4th-order low-pass as two cascaded sections.
func ButterworthLowpass(cutoff, sampleRate float64) []Biquad {
	return []Biquad{
		lowpassSection(cutoff, sampleRate, butterworthQ[0]),
		lowpassSection(cutoff, sampleRate, butterworthQ[1]),
	}
}

// Peaking returns a peaking EQ centred on freq. gainDB is converted to an amplitude
// ratio that scales both numerator and denominator, so the gain at freq is 2*gainDB.
func Peaking(freq, gainDB, q, sampleRate float64) Biquad {
	gain := math.Pow(10, gainDB/20)
	w0 := 2 * math.Pi * freq / sampleRate
	cosW, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	return normalize(
		1+alpha*gain, -2*cosW, 1-alpha*gain,
		1+alpha/gain, -2*cosW, 1-alpha/gain,
	)
}

// Cascade runs x through every section in order.
func Cascade(x []float64, sections ...Biquad) {
	for _, s := range sections {
		s.Process(x)
	}
}
