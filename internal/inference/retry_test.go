package inference

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns one queued outcome per call.
type scriptedClient struct {
	calls    int
	outcomes []error
	result   *Result
}

func (s *scriptedClient) Invoke(ctx context.Context, req Request) (*Result, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.outcomes) && s.outcomes[idx] != nil {
		return nil, s.outcomes[idx]
	}
	if s.result != nil {
		return s.result, nil
	}
	return &Result{Content: []byte(`"ok"`), Model: "scripted"}, nil
}

func (s *scriptedClient) ModelID() string { return "scripted" }

func TestRetry_TransientFailureThenSuccess(t *testing.T) {
	inner := &scriptedClient{outcomes: []error{
		ServiceUnavailable(fmt.Errorf("connection reset")),
		nil,
	}}

	res, err := withRetry(inner, 3).Invoke(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text())
	assert.Equal(t, 2, inner.calls)
}

func TestRetry_MalformedRetriedExactlyOnce(t *testing.T) {
	inner := &scriptedClient{outcomes: []error{
		MalformedResponse(fmt.Errorf("bad json")),
		MalformedResponse(fmt.Errorf("bad json again")),
		nil,
	}}

	_, err := withRetry(inner, 5).Invoke(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
	assert.Equal(t, 2, inner.calls, "second malformed response must not be retried")
}

func TestRetry_CanceledContextNotRetried(t *testing.T) {
	inner := &scriptedClient{outcomes: []error{
		ServiceUnavailable(context.Canceled),
	}}

	_, err := withRetry(inner, 3).Invoke(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, inner.calls)
}

func TestRetry_ExhaustionReturnsLastError(t *testing.T) {
	inner := &scriptedClient{outcomes: []error{
		ServiceUnavailable(fmt.Errorf("outage 1")),
		ServiceUnavailable(fmt.Errorf("outage 2")),
	}}

	_, err := withRetry(inner, 2).Invoke(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.Equal(t, KindServiceUnavailable, KindOf(err))
	assert.Contains(t, err.Error(), "outage 2")
	assert.Equal(t, 2, inner.calls)
}

func TestResult_TextAndDecode(t *testing.T) {
	text := &Result{Content: []byte(`"plain answer"`)}
	assert.Equal(t, "plain answer", text.Text())

	structured := &Result{Content: []byte(`{"crop_name": "Rice"}`)}
	var v struct {
		CropName *string `json:"crop_name"`
	}
	require.NoError(t, structured.Decode(&v))
	require.NotNil(t, v.CropName)
	assert.Equal(t, "Rice", *v.CropName)

	broken := &Result{Content: []byte(`{`)}
	err := broken.Decode(&v)
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestKindOf_DefaultsToServiceUnavailable(t *testing.T) {
	assert.Equal(t, KindServiceUnavailable, KindOf(fmt.Errorf("plain error")))
	assert.Equal(t, KindUploadFailed, KindOf(&Error{Kind: KindUploadFailed}))
}
