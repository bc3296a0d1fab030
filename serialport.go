package seismod

import (
	"fmt"
	"io"

	"github.com/pkg/term"
)

// SerialPort is the narrow interface the line source needs from a serial
// device: readable bytes and a close. Kept as an interface (rather than a
// concrete *term.Term everywhere) so tests can substitute an io.Reader over
// a fixture instead of a real device.
type SerialPort interface {
	io.Reader
	io.Closer
}

// termSerialPort is the real, hardware-backed SerialPort, grounded in
// github.com/pkg/term the way doismellburning-samoyed's serial_port.go uses
// it, but re-expressed in idiomatic Go: error-returning constructor instead
// of a nil-on-failure handle, no package-level C-style free functions.
type termSerialPort struct {
	t *term.Term
}

// OpenSerialPort opens devicename (e.g. "/dev/ttyUSB0") at baud bps in raw
// mode, 8-N-1, matching the device's line-framed ASCII output format.
func OpenSerialPort(devicename string, baud int) (SerialPort, error) {
	t, err := term.Open(devicename, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", devicename, err)
	}
	return &termSerialPort{t: t}, nil
}

func (s *termSerialPort) Read(p []byte) (int, error) {
	return s.t.Read(p)
}

func (s *termSerialPort) Close() error {
	return s.t.Close()
}
