package seismod

import "log"

// RawWriter is the optional raw-data consumer: every record is written with
// trigger always false ("S"), regardless of whether it ever crosses a
// trigger threshold. It implements RecordHandler so it runs as its own
// fan-out worker, independent of the event recorder's trigger logic.
type RawWriter struct {
	writer RecordWriter
}

// NewRawWriter wraps a RecordWriter (typically a *FileRecordWriter) as an
// always-write consumer.
func NewRawWriter(writer RecordWriter) *RawWriter {
	return &RawWriter{writer: writer}
}

// Handle writes rec unconditionally with trigger=false.
func (w *RawWriter) Handle(rec Record) {
	if err := w.writer.WriteRecord(rec, false); err != nil {
		log.Printf("raw writer: write failed: %v", err)
	}
}
