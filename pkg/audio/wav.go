package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// Tone synthesizes a sine wave with a short linear fade in and out
func Tone(format Format, freq float64, d time.Duration, volume float64) []byte {
	samples := int(int64(format.SampleRate) * int64(d) / int64(time.Second))
	fade := format.SampleRate / 100 // 10ms
	buf := make([]byte, 0, samples*format.Channels*2)

	for i := 0; i < samples; i++ {
		amp := volume
		if i < fade {
			amp *= float64(i) / float64(fade)
		} else if samples-i < fade {
			amp *= float64(samples-i) / float64(fade)
		}

		v := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(format.SampleRate)))
		for ch := 0; ch < format.Channels; ch++ {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
		}
	}
	return buf
}

// encodeWAV wraps PCM data in a minimal RIFF/WAVE container
func encodeWAV(format Format, pcm []byte) []byte {
	var buf bytes.Buffer
	blockAlign := format.Channels * format.BitDepth / 8

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(format.BitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// parseWAV parses a WAV file and returns the format and audio data
func parseWAV(data []byte) (Format, []byte, error) {
	reader := bytes.NewReader(data)
	var format Format

	header := make([]byte, 12)
	if _, err := io.ReadFull(reader, header); err != nil {
		return format, nil, fmt.Errorf("read header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return format, nil, errors.New("not a RIFF/WAVE file")
	}

	haveFormat := false
	for {
		chunkID := make([]byte, 4)
		if _, err := io.ReadFull(reader, chunkID); err != nil {
			if err == io.EOF {
				return format, nil, errors.New("missing data chunk")
			}
			return format, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return format, nil, err
		}

		switch string(chunkID) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
				return format, nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			format.Channels = int(fmtChunk.NumChannels)
			format.SampleRate = int(fmtChunk.SampleRate)
			format.BitDepth = int(fmtChunk.BitsPerSample)
			haveFormat = true

			// Skip any extra format bytes
			if chunkSize > 16 {
				reader.Seek(int64(chunkSize-16), io.SeekCurrent)
			}
		case "data":
			if !haveFormat {
				return format, nil, errors.New("data chunk before fmt chunk")
			}
			audioData := make([]byte, chunkSize)
			if _, err := io.ReadFull(reader, audioData); err != nil {
				return format, nil, fmt.Errorf("read data chunk: %w", err)
			}
			return format, audioData, nil
		default:
			// Skip unknown chunk
			reader.Seek(int64(chunkSize), io.SeekCurrent)
		}
	}
}
