package audio

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton. oto allows a single context per process,
// so the first sound played fixes the sample rate and channel count.
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	globalAudioCtxErr  error
)

// Format describes PCM sample layout (signed 16-bit little endian)
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat is used for the built-in chime
var DefaultFormat = Format{SampleRate: 44100, Channels: 1, BitDepth: 16}

func initAudioContext(format Format) error {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			globalAudioCtxErr = fmt.Errorf("failed to initialize audio context: %w", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		log.Println("Audio context initialized successfully")
	})
	return globalAudioCtxErr
}

// Chime plays short notification sounds
type Chime struct {
	format Format
	pcm    []byte
}

// NewChime returns the built-in two-tone chime
func NewChime() *Chime {
	first := Tone(DefaultFormat, 880, 180*time.Millisecond, 0.4)
	second := Tone(DefaultFormat, 1320, 260*time.Millisecond, 0.35)
	return &Chime{format: DefaultFormat, pcm: append(first, second...)}
}

// LoadChime reads a 16-bit PCM WAV file, or returns the built-in chime when path is empty
func LoadChime(path string) (*Chime, error) {
	if path == "" {
		return NewChime(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound file: %w", err)
	}

	format, pcm, err := parseWAV(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("parse %s: unsupported bit depth %d", path, format.BitDepth)
	}
	return &Chime{format: format, pcm: pcm}, nil
}

// Duration returns how long the chime plays
func (c *Chime) Duration() time.Duration {
	bytesPerSecond := c.format.SampleRate * c.format.Channels * c.format.BitDepth / 8
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(len(c.pcm)) * time.Second / time.Duration(bytesPerSecond)
}

// Play plays the chime once and blocks until it finishes
func (c *Chime) Play() error {
	if err := initAudioContext(c.format); err != nil {
		return err
	}

	player := globalAudioCtx.NewPlayer(bytes.NewReader(c.pcm))
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}
