package seismod

import (
	"fmt"
	"strconv"
)

// RawSample holds one tri-axial reading as decoded off the wire.
type RawSample = int32

// Record is a single tri-axial sample as it moves through the pipeline.
// Records are immutable after construction; Clone returns an independent
// copy so that each fan-out subscriber can hold its own value without data
// races with other subscribers or with the source.
type Record struct {
	TimestampUs   uint64 // unwrapped, monotonic microseconds since session start
	TimestampWall int64  // wall-clock microseconds, stamped by the Source when the line is parsed
	X, Y, Z       RawSample
	XFilt         RawSample
	YFilt         RawSample
	ZFilt         RawSample
}

// Clone returns an independent copy of the record. Record has no pointer
// fields, so a value copy already satisfies the immutability contract; Clone
// exists to make that contract explicit at fan-out call sites.
func (r Record) Clone() Record {
	return r
}

// ParseErrorKind classifies why a wire line failed to parse.
type ParseErrorKind int

const (
	// ErrMissingField means the line did not have exactly 7 comma-separated
	// fields.
	ErrMissingField ParseErrorKind = iota
	// ErrInvalidNumber means a field was present but not a valid integer.
	ErrInvalidNumber
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrMissingField:
		return "missing field"
	case ErrInvalidNumber:
		return "invalid number"
	default:
		return "unknown parse error"
	}
}

// ParseError reports the column and reason a wire line could not be parsed
// into a Record.
type ParseError struct {
	Column int
	Kind   ParseErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse column %d (%s)", e.Column, e.Kind)
}

// ParseRecord parses one wire line of the form
// "ts,x_filt,y_filt,z_filt,x,y,z" into a Record. The timestamp is left in its
// raw (possibly wrapped) 32-bit form in TimestampUs; callers that need the
// unwrapped session-relative timestamp must run the result through a
// TimestampUnwrapper. Malformed lines return a *ParseError and the caller
// is expected to silently discard the line, per the wire protocol's
// tolerance for the device's occasional partial startup line.
func ParseRecord(line []byte) (Record, error) {
	fields := splitComma(line)
	if len(fields) != 7 {
		return Record{}, &ParseError{Column: len(fields), Kind: ErrMissingField}
	}

	var rec Record
	ts, err := parseUint(fields[0])
	if err != nil {
		return Record{}, &ParseError{Column: 0, Kind: ErrInvalidNumber}
	}
	rec.TimestampUs = ts

	vals := [6]*RawSample{&rec.XFilt, &rec.YFilt, &rec.ZFilt, &rec.X, &rec.Y, &rec.Z}
	for i, dst := range vals {
		v, err := parseInt32(fields[i+1])
		if err != nil {
			return Record{}, &ParseError{Column: i + 1, Kind: ErrInvalidNumber}
		}
		*dst = v
	}
	return rec, nil
}

func splitComma(line []byte) [][]byte {
	var fields [][]byte
	start := 0
	for i, b := range line {
		if b == ',' {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	fields = append(fields, line[start:])
	return fields
}

func parseUint(field []byte) (uint64, error) {
	return strconv.ParseUint(string(field), 10, 64)
}

func parseInt32(field []byte) (int32, error) {
	v, err := strconv.ParseInt(string(field), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
