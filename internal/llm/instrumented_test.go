package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	provider  string
	operation string
	status    string
	duration  time.Duration
}

type fakeRecorder struct {
	calls []recordedCall
}

func (r *fakeRecorder) RecordProviderCall(_ context.Context, provider, operation, status string, duration time.Duration) {
	r.calls = append(r.calls, recordedCall{provider, operation, status, duration})
}

type staticProvider struct {
	response string
	err      error
}

func (s *staticProvider) Name() string { return "static" }

func (s *staticProvider) Complete(context.Context, string, Options) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestInstrumentRecordsSuccess(t *testing.T) {
	recorder := &fakeRecorder{}
	provider := Instrument(&staticProvider{response: "invoice"}, recorder)

	out, err := provider.Complete(context.Background(), "prompt", Options{Operation: "classify"})
	require.NoError(t, err)
	assert.Equal(t, "invoice", out)

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, "static", call.provider)
	assert.Equal(t, "classify", call.operation)
	assert.Equal(t, "success", call.status)
	assert.GreaterOrEqual(t, call.duration, time.Duration(0))
}

func TestInstrumentRecordsError(t *testing.T) {
	recorder := &fakeRecorder{}
	provider := Instrument(&staticProvider{err: errors.New("connection refused")}, recorder)

	_, err := provider.Complete(context.Background(), "prompt", Options{Operation: "extract"})
	require.Error(t, err)

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, "extract", recorder.calls[0].operation)
	assert.Equal(t, "error", recorder.calls[0].status)
}

func TestInstrumentDefaultsOperation(t *testing.T) {
	recorder := &fakeRecorder{}
	provider := Instrument(&staticProvider{response: "ok"}, recorder)

	_, err := provider.Complete(context.Background(), "prompt", Options{})
	require.NoError(t, err)
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, "complete", recorder.calls[0].operation)
}

func TestInstrumentPassesThroughName(t *testing.T) {
	provider := Instrument(&staticProvider{}, &fakeRecorder{})
	assert.Equal(t, "static", provider.Name())
}

func TestInstrumentNilRecorderIsUnwrapped(t *testing.T) {
	inner := &staticProvider{}
	assert.Same(t, Provider(inner), Instrument(inner, nil))
}
