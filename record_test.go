package seismod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordFieldOrder(t *testing.T) {
	rec, err := ParseRecord([]byte("123456,11,12,13,14,15,16"))
	require.NoError(t, err)

	assert.Equal(t, uint64(123456), rec.TimestampUs)
	assert.Equal(t, RawSample(11), rec.XFilt)
	assert.Equal(t, RawSample(12), rec.YFilt)
	assert.Equal(t, RawSample(13), rec.ZFilt)
	assert.Equal(t, RawSample(14), rec.X)
	assert.Equal(t, RawSample(15), rec.Y)
	assert.Equal(t, RawSample(16), rec.Z)
}

func TestParseRecordNegativeValues(t *testing.T) {
	rec, err := ParseRecord([]byte("1,-1,-2,-3,-4,-5,-6"))
	require.NoError(t, err)

	assert.Equal(t, RawSample(-1), rec.XFilt)
	assert.Equal(t, RawSample(-6), rec.Z)
}

func TestParseRecordMissingField(t *testing.T) {
	_, err := ParseRecord([]byte("1,2,3"))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrMissingField, pe.Kind)
}

func TestParseRecordInvalidNumber(t *testing.T) {
	_, err := ParseRecord([]byte("1,2,3,4,5,6,abc"))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrInvalidNumber, pe.Kind)
	assert.Equal(t, 6, pe.Column)
}

func TestRecordCloneIsIndependent(t *testing.T) {
	rec := Record{TimestampUs: 1, X: 2}
	clone := rec.Clone()
	clone.X = 99

	assert.Equal(t, RawSample(2), rec.X)
	assert.Equal(t, RawSample(99), clone.X)
}
