package seismod

import (
	"container/list"
	"log"

	"github.com/davecgh/go-spew/spew"
)

// RecordWriter is anything that can accept a written record with a
// trigger-marker flag: 'T' for the first record of an event, 'S' otherwise.
// FileRecordWriter, the raw writer, and the telemetry publisher all satisfy
// it.
type RecordWriter interface {
	WriteRecord(rec Record, trigger bool) error
}

// Detector is the record-level trigger verdict an EventRecorder consumes.
// *TriggerDetector satisfies it; tests substitute a fake to drive the state
// machine without a real EMA/window pipeline.
type Detector interface {
	Detect(rec *Record) bool
}

// EventRecorder is the pre/post-trigger buffering state machine: it
// coalesces overlapping triggers into a single contiguous event, prepends a
// bounded pre-trigger window, and holds the event open through a
// post-trigger grace period that a retrigger can extend.
type EventRecorder struct {
	detector Detector
	writer   RecordWriter

	preTriggerUs  uint64
	postTriggerUs uint64

	preRoll *list.List // of Record, oldest first

	triggered     bool
	lastTriggerUs uint64
}

// NewEventRecorder builds an EventRecorder from a detector, a destination
// writer, and pre/post-trigger durations expressed in milliseconds.
func NewEventRecorder(detector Detector, writer RecordWriter, preTriggerMs, postTriggerMs uint32) *EventRecorder {
	return &EventRecorder{
		detector:      detector,
		writer:        writer,
		preTriggerUs:  uint64(preTriggerMs) * 1000,
		postTriggerUs: uint64(postTriggerMs) * 1000,
		preRoll:       list.New(),
	}
}

// Handle processes one record through the state machine, in the order spec'd
// in the component design: detect, update triggered/last-trigger, age out
// stale pre-roll, flush pre-roll on a new event, then either buffer or
// write the current record.
func (e *EventRecorder) Handle(rec Record) {
	prev := e.triggered
	d := e.detector.Detect(&rec)

	if d {
		e.lastTriggerUs = rec.TimestampUs
		e.triggered = true
	} else if prev {
		e.triggered = rec.TimestampUs-e.lastTriggerUs <= e.postTriggerUs
	}

	if e.triggered != prev {
		log.Printf("event recorder: trigger state changed to %v at t=%d: %s",
			e.triggered, rec.TimestampUs, spew.Sdump(rec))
	}

	newEvent := e.triggered && !prev

	e.ageOutPreRoll(rec.TimestampUs)

	if newEvent {
		e.flushPreRoll()
	}

	if !e.triggered {
		e.preRoll.PushBack(rec)
		return
	}

	if err := e.writer.WriteRecord(rec, newEvent); err != nil {
		log.Printf("event recorder: write failed: %v", err)
	}
}

// ageOutPreRoll drops contiguous head entries whose age exceeds the
// pre-trigger window, relative to the just-arrived record's timestamp.
func (e *EventRecorder) ageOutPreRoll(nowUs uint64) {
	for e.preRoll.Len() > 0 {
		head := e.preRoll.Front()
		rec := head.Value.(Record)
		if nowUs-rec.TimestampUs <= e.preTriggerUs {
			break
		}
		e.preRoll.Remove(head)
	}
}

// flushPreRoll writes every remaining pre-roll entry (oldest first) to the
// writer with trigger=false, then clears the pre-roll. The triggering
// record itself is written separately, after the flush, by the caller.
func (e *EventRecorder) flushPreRoll() {
	for el := e.preRoll.Front(); el != nil; el = el.Next() {
		rec := el.Value.(Record)
		if err := e.writer.WriteRecord(rec, false); err != nil {
			log.Printf("event recorder: pre-roll flush write failed: %v", err)
		}
	}
	e.preRoll.Init()
}

// PreRollLen reports how many records currently sit in the pre-roll buffer.
// Exposed so tests can check the buffer ages records out correctly.
func (e *EventRecorder) PreRollLen() int {
	return e.preRoll.Len()
}

// Triggered reports whether the recorder currently believes itself inside
// an active event.
func (e *EventRecorder) Triggered() bool {
	return e.triggered
}
