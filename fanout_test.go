package seismod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanoutDeliversToAllSubscribers(t *testing.T) {
	f := NewFanout()
	a := f.Subscribe()
	b := f.Subscribe()

	f.Publish(Record{TimestampUs: 1})
	f.Publish(Record{TimestampUs: 2})

	for _, ch := range []<-chan Record{a, b} {
		require.Equal(t, uint64(1), recv(t, ch).TimestampUs)
		require.Equal(t, uint64(2), recv(t, ch).TimestampUs)
	}
}

func TestFanoutPreservesPublicationOrderPerSubscriber(t *testing.T) {
	f := NewFanout()
	ch := f.Subscribe()

	const n = 200
	for i := uint64(0); i < n; i++ {
		f.Publish(Record{TimestampUs: i})
	}

	for i := uint64(0); i < n; i++ {
		assert.Equal(t, i, recv(t, ch).TimestampUs)
	}
}

func TestFanoutCloseDrainsThenClosesChannel(t *testing.T) {
	f := NewFanout()
	ch := f.Subscribe()

	f.Publish(Record{TimestampUs: 1})
	f.Close()

	assert.Equal(t, uint64(1), recv(t, ch).TimestampUs)

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel never closed")
	}
}

func recv(t *testing.T, ch <-chan Record) Record {
	t.Helper()
	select {
	case rec := <-ch:
		return rec
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for record")
		return Record{}
	}
}
