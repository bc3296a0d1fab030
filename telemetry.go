package seismod

import (
	"bytes"
	"encoding/binary"
	"fmt"

	czmq "github.com/zeromq/goczmq"
)

// TelemetryPublisher is the optional live-view consumer: it opens a ZeroMQ
// PUB socket and, for every record written to it, publishes a little-endian
// binary frame. cmd/seismod wraps it in a RawWriter, so every sample is
// published. Grounded in the original DataPublisher/
// messageRecords (publish_data.go), collapsed to a single channeler since
// this domain has no per-channel fan-out to publish independently.
type TelemetryPublisher struct {
	pub *czmq.Channeler
}

// NewTelemetryPublisher opens a PUB socket bound to the given TCP port.
func NewTelemetryPublisher(port int) *TelemetryPublisher {
	hostname := fmt.Sprintf("tcp://*:%d", port)
	return &TelemetryPublisher{pub: czmq.NewPubChanneler(hostname)}
}

// WriteRecord satisfies RecordWriter so a TelemetryPublisher can sit
// directly behind the event recorder or be wrapped in its own RawWriter for
// an every-sample feed.
func (p *TelemetryPublisher) WriteRecord(rec Record, trigger bool) error {
	p.pub.SendChan <- messageRecord(rec, trigger)
	return nil
}

// Close tears down the underlying ZeroMQ socket.
func (p *TelemetryPublisher) Close() {
	p.pub.Destroy()
}

// messageRecord builds the header-then-payload frame: channel count,
// trigger marker byte, record length and timestamp in the header, then the
// six sample values, mirroring the shape of publish_data.go's
// messageRecords.
func messageRecord(rec Record, trigger bool) [][]byte {
	const channelCount = uint16(3)
	const recordLength = uint32(1)

	marker := uint8(0)
	if trigger {
		marker = 1
	}

	header := new(bytes.Buffer)
	binary.Write(header, binary.LittleEndian, channelCount)
	binary.Write(header, binary.LittleEndian, marker)
	binary.Write(header, binary.LittleEndian, recordLength)
	binary.Write(header, binary.LittleEndian, rec.TimestampUs)

	payload := new(bytes.Buffer)
	binary.Write(payload, binary.LittleEndian, rec.X)
	binary.Write(payload, binary.LittleEndian, rec.Y)
	binary.Write(payload, binary.LittleEndian, rec.Z)
	binary.Write(payload, binary.LittleEndian, rec.XFilt)
	binary.Write(payload, binary.LittleEndian, rec.YFilt)
	binary.Write(payload, binary.LittleEndian, rec.ZFilt)

	return [][]byte{header.Bytes(), payload.Bytes()}
}
