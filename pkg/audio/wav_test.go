package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToneLength(t *testing.T) {
	pcm := Tone(DefaultFormat, 440, 100*time.Millisecond, 0.5)
	require.Len(t, pcm, 4410*2)

	stereo := Format{SampleRate: 8000, Channels: 2, BitDepth: 16}
	require.Len(t, Tone(stereo, 440, time.Second, 0.5), 8000*2*2)
}

func TestToneFadesFromSilence(t *testing.T) {
	pcm := Tone(DefaultFormat, 440, 50*time.Millisecond, 1)
	require.Equal(t, byte(0), pcm[0])
	require.Equal(t, byte(0), pcm[1])
}

func TestParseWAVRoundTrip(t *testing.T) {
	format := Format{SampleRate: 22050, Channels: 2, BitDepth: 16}
	pcm := Tone(format, 660, 20*time.Millisecond, 0.3)

	gotFormat, gotPCM, err := parseWAV(encodeWAV(format, pcm))
	require.NoError(t, err)
	require.Equal(t, format, gotFormat)
	require.Equal(t, pcm, gotPCM)
}

func TestParseWAVRejectsGarbage(t *testing.T) {
	_, _, err := parseWAV([]byte("definitely not audio"))
	require.Error(t, err)

	_, _, err = parseWAV([]byte("RIF"))
	require.Error(t, err)
}

func TestLoadChime(t *testing.T) {
	builtin, err := LoadChime("")
	require.NoError(t, err)
	require.Equal(t, 440*time.Millisecond, builtin.Duration())

	format := Format{SampleRate: 8000, Channels: 1, BitDepth: 16}
	path := filepath.Join(t.TempDir(), "bell.wav")
	require.NoError(t, os.WriteFile(path, encodeWAV(format, Tone(format, 500, 250*time.Millisecond, 0.5)), 0o600))

	chime, err := LoadChime(path)
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, chime.Duration())

	_, err = LoadChime(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}
