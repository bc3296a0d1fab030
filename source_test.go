package seismod

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bufferPort is a SerialPort backed by an in-memory byte slice, standing in
// for the real github.com/pkg/term device the way the Rust original's
// TestPort fixture stands in for a real serialport::SerialPort.
type bufferPort struct {
	r *bytes.Reader
}

func newBufferPort(data []byte) *bufferPort {
	return &bufferPort{r: bytes.NewReader(data)}
}

// Read passes straight through to the backing reader: once the fixture is
// exhausted it returns io.EOF, which ends Run's read loop the same way a
// genuinely closed device would.
func (p *bufferPort) Read(buf []byte) (int, error) {
	return p.r.Read(buf)
}

func (p *bufferPort) Close() error { return nil }

func TestSourceProcessesCompleteLines(t *testing.T) {
	port := newBufferPort([]byte("123456,11,12,13,14,15,16\r\n"))
	fanout := NewFanout()
	ch := fanout.Subscribe()

	src := NewSource(port, fanout)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	go src.Run(ctx)

	select {
	case rec := <-ch:
		assert.Equal(t, RawSample(11), rec.XFilt)
		assert.Equal(t, RawSample(16), rec.Z)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for record")
	}
}

func TestSourceUnwrapsTimestampAcrossCalls(t *testing.T) {
	port := newBufferPort([]byte(
		"4294967294,1,1,1,1,1,1\r\n3,1,1,1,1,1,1\r\n15,1,1,1,1,1,1\r\n",
	))
	fanout := NewFanout()
	ch := fanout.Subscribe()

	src := NewSource(port, fanout)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	go src.Run(ctx)

	got := make([]uint64, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case rec := <-ch:
			got = append(got, rec.TimestampUs)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for record")
		}
	}

	require.Equal(t, []uint64{4294967294, 4294967299, 4294967311}, got)
}

func TestSourceDropsMalformedLines(t *testing.T) {
	port := newBufferPort([]byte("not,a,valid,line\r\n1,2,3,4,5,6,7\r\n"))
	fanout := NewFanout()
	ch := fanout.Subscribe()

	src := NewSource(port, fanout)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	go src.Run(ctx)

	select {
	case rec := <-ch:
		assert.Equal(t, RawSample(2), rec.XFilt)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for record")
	}
}
