package seismod

import (
	"fmt"
	"log"
	"os"
)

// RMSRecorder is the per-sample RMS consumer: it writes one
// `ts_us,x_rms,y_rms,z_rms` line once each channel's window has filled.
// Grounded in the original Rust rmsrecorder.rs, which wires three
// RunningRMS instances to one output file the same way.
type RMSRecorder struct {
	x, y, z *RunningRMS
	file    *os.File
}

// NewRMSRecorder opens filename for appending and builds three RunningRMS
// windows of the given size, one per axis.
func NewRMSRecorder(filename string, windowSize int) (*RMSRecorder, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open rms file %q: %w", filename, err)
	}
	return &RMSRecorder{
		x:    NewRunningRMS(windowSize),
		y:    NewRunningRMS(windowSize),
		z:    NewRunningRMS(windowSize),
		file: f,
	}, nil
}

// Handle feeds the raw (unfiltered) samples of rec into the three RMS
// windows and, once all three have filled, appends one line of output.
func (r *RMSRecorder) Handle(rec Record) {
	xRMS, xOK := r.x.AddSample(rec.X)
	yRMS, yOK := r.y.AddSample(rec.Y)
	zRMS, zOK := r.z.AddSample(rec.Z)
	if !xOK || !yOK || !zOK {
		return
	}

	line := fmt.Sprintf("%d,%d,%d,%d\n", rec.TimestampUs, xRMS, yRMS, zRMS)
	if _, err := r.file.WriteString(line); err != nil {
		log.Printf("rms recorder: write failed: %v", err)
	}
}

// Close closes the underlying output file.
func (r *RMSRecorder) Close() error {
	return r.file.Close()
}
