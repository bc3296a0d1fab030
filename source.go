package seismod

import (
	"context"
	"errors"
	"io"
	"log"
)

// Source reads line-framed records off a SerialPort, unwraps their
// timestamps, and publishes each to a Fanout. Grounded in the original Rust
// Seismometer (server/src/seismometer.rs)'s buffer/process_buffer loop,
// restructured around a Start/blockingRead goroutine shape with a single
// concrete source type, since this domain has exactly one source kind.
type Source struct {
	port   SerialPort
	fanout *Fanout

	buffer    []byte
	unwrapper TimestampUnwrapper
}

// NewSource builds a Source reading from port and publishing to fanout.
func NewSource(port SerialPort, fanout *Fanout) *Source {
	return &Source{
		port:   port,
		fanout: fanout,
		buffer: make([]byte, 0, 4096),
	}
}

// Run reads from the serial port until ctx is cancelled, framing complete
// CRLF-terminated lines out of the accumulated buffer and publishing each
// successfully parsed record. A read error (including a routine read
// timeout on the real device) is logged and the loop continues; it never
// terminates the acquisition loop on its own. io.EOF is treated as the
// end of the stream (the fixed-length fixture a test reads from, rather
// than a live device) and ends the loop cleanly.
func (s *Source) Run(ctx context.Context) error {
	chunk := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := s.port.Read(chunk)
		if n > 0 {
			s.buffer = append(s.buffer, chunk[:n]...)
			s.processBuffer()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Printf("source: read error: %v", err)
			continue
		}
	}
}

// processBuffer extracts and publishes every complete line currently sitting
// in the buffer, then drains the consumed bytes.
func (s *Source) processBuffer() {
	for {
		pos := indexByte(s.buffer, '\n')
		if pos < 0 {
			return
		}

		line := s.buffer[:pos]
		// Arduino-style println sends CRLF; strip the trailing CR if present.
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}

		// Malformed lines are dropped silently.
		if rec, err := ParseRecord(line); err == nil {
			rec.TimestampWall = nowWallMicros()
			rec.TimestampUs = s.unwrapper.Unwrap(uint32(rec.TimestampUs))
			s.fanout.Publish(rec)
		}

		s.buffer = append(s.buffer[:0], s.buffer[pos+1:]...)
	}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
