package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
	outputBitDepth      = 16
)

// Clip is decoded audio as one float slice per channel in [-1, 1].
type Clip struct {
	SampleRate int
	BitDepth   int // of the source
	Channels   [][]float64
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// wavFormat is the fmt chunk of a WAVE file. Tag holds the subformat for
// WAVE_FORMAT_EXTENSIBLE files.
type wavFormat struct {
	Tag        uint16
	Channels   int
	SampleRate int
	BitDepth   int
}

// readFormat walks the RIFF container up to and including the fmt chunk.
func readFormat(p *riff.Parser) (wavFormat, error) {
	if err := p.ParseHeaders(); err != nil {
		return wavFormat{}, err
	}
	if p.Format != riff.WavFormatID {
		return wavFormat{}, errors.New("not a WAVE container")
	}
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return wavFormat{}, errors.New("no fmt chunk")
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		var hdr struct {
			Tag        uint16
			Channels   uint16
			SampleRate uint32
			ByteRate   uint32
			BlockAlign uint16
			BitDepth   uint16
		}
		if err := ch.ReadLE(&hdr); err != nil {
			return wavFormat{}, fmt.Errorf("fmt chunk: %w", err)
		}
		f := wavFormat{
			Tag:        hdr.Tag,
			Channels:   int(hdr.Channels),
			SampleRate: int(hdr.SampleRate),
			BitDepth:   int(hdr.BitDepth),
		}
		if hdr.Tag == wavFormatExtensible {
			var ext struct {
				Size        uint16
				ValidBits   uint16
				ChannelMask uint32
				SubFormat   [16]byte
			}
			if err := ch.ReadLE(&ext); err != nil {
				return wavFormat{}, fmt.Errorf("extensible fmt chunk: %w", err)
			}
			// The subformat GUID starts with the plain format tag.
			f.Tag = binary.LittleEndian.Uint16(ext.SubFormat[:2])
		}
		ch.Drain()
		return f, nil
	}
}

// readFloatSamples decodes the data chunk of an IEEE float WAV.
func readFloatSamples(p *riff.Parser, f wavFormat) ([][]float64, error) {
	width := f.BitDepth / 8
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return nil, errors.New("no data chunk")
		}
		if ch.ID != riff.DataFormatID {
			ch.Drain()
			continue
		}

		data := make([]byte, ch.Size)
		n, err := io.ReadFull(ch, data)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		data = data[:n]

		frames := len(data) / (width * f.Channels)
		channels := make([][]float64, f.Channels)
		for c := range channels {
			channels[c] = make([]float64, frames)
		}
		for i := 0; i < frames; i++ {
			for c := 0; c < f.Channels; c++ {
				b := data[(i*f.Channels+c)*width:]
				if width == 4 {
					channels[c][i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
				} else {
					channels[c][i] = math.Float64frombits(binary.LittleEndian.Uint64(b))
				}
			}
		}
		return channels, nil
	}
}

// ReadWAV decodes an integer PCM or IEEE float WAV file, plain or extensible.
func ReadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	p := riff.New(f)
	format, err := readFormat(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrUnsupportedFormat, err)
	}
	if format.Channels <= 0 {
		return nil, fmt.Errorf("%s: %w: no channels", path, ErrUnsupportedFormat)
	}

	switch format.Tag {
	case wavFormatPCM:
	case wavFormatFloat:
		if format.BitDepth != 32 && format.BitDepth != 64 {
			return nil, fmt.Errorf("%s: %w: %d-bit float", path, ErrUnsupportedFormat, format.BitDepth)
		}
		channels, err := readFloatSamples(p, format)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return &Clip{SampleRate: format.SampleRate, BitDepth: format.BitDepth, Channels: channels}, nil
	default:
		return nil, fmt.Errorf("%s: %w: WAV format tag %#x is neither PCM nor IEEE float", path, ErrUnsupportedFormat, format.Tag)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", path, err)
	}
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: %w: not a valid WAV file", path, ErrUnsupportedFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	numCh := buf.Format.NumChannels
	if numCh <= 0 {
		return nil, fmt.Errorf("%s: %w: no channels", path, ErrUnsupportedFormat)
	}
	frames := len(buf.Data) / numCh
	clip := &Clip{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   buf.SourceBitDepth,
		Channels:   make([][]float64, numCh),
	}
	for c := range clip.Channels {
		clip.Channels[c] = make([]float64, frames)
	}

	toFloat := intToFloat(buf.SourceBitDepth)
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			clip.Channels[c][i] = toFloat(buf.Data[i*numCh+c])
		}
	}
	return clip, nil
}

func intToFloat(bitDepth int) func(int) float64 {
	if bitDepth == 8 {
		// 8-bit WAV is unsigned.
		return func(v int) float64 { return float64(v-128) / 128 }
	}
	scale := float64(int64(1) << uint(bitDepth-1))
	return func(v int) float64 { return float64(v) / scale }
}

// WriteWAV encodes clip as 16-bit PCM, clamping to full scale.
func WriteWAV(path string, clip *Clip) (err error) {
	numCh := len(clip.Channels)
	if numCh == 0 {
		return fmt.Errorf("write %s: no channels", path)
	}
	frames := clip.Frames()

	data := make([]int, frames*numCh)
	const full = math.MaxInt16
	for i := 0; i < frames; i++ {
		for c := 0; c < numCh; c++ {
			v := math.Round(clip.Channels[c][i] * full)
			data[i*numCh+c] = int(math.Max(-full-1, math.Min(full, v)))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	enc := wav.NewEncoder(f, clip.SampleRate, outputBitDepth, numCh, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numCh, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: outputBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}
