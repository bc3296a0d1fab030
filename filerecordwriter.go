package seismod

import (
	"fmt"
	"os"
	"time"
)

// FileRecordWriter appends records to a text file, one line per record in
// the `wall_us,ts_us,x_filt,y_filt,z_filt,x,y,z,M` format. Grounded in the
// original Rust FileRecordWriter (server/src/filerecordwriter.rs),
// re-expressed with Go's os.OpenFile append mode in place of Rust's
// OpenOptions::append.
type FileRecordWriter struct {
	file *os.File
}

// NewFileRecordWriter opens (creating if necessary) filename for appending.
func NewFileRecordWriter(filename string) (*FileRecordWriter, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open record file %q: %w", filename, err)
	}
	return &FileRecordWriter{file: f}, nil
}

// WriteRecord appends one line for rec. trigger selects the "T"/"S" marker.
func (w *FileRecordWriter) WriteRecord(rec Record, trigger bool) error {
	marker := "S"
	if trigger {
		marker = "T"
	}
	line := fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d,%d,%s\n",
		rec.TimestampWall, rec.TimestampUs,
		rec.XFilt, rec.YFilt, rec.ZFilt,
		rec.X, rec.Y, rec.Z, marker)
	_, err := w.file.WriteString(line)
	return err
}

// Close flushes and closes the underlying file.
func (w *FileRecordWriter) Close() error {
	return w.file.Close()
}

// nowWallMicros is the source's wall-clock stamp for a freshly parsed record,
// a thin wrapper kept outside record.go since the parser deals purely in
// wire bytes; Source.processBuffer calls it, and the writer prints the
// resulting TimestampWall.
func nowWallMicros() int64 {
	return time.Now().UnixMicro()
}
