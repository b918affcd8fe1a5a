package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliver_SignsBody(t *testing.T) {
	var gotSig, gotUA string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(SignatureHeader)
		gotUA = r.Header.Get("User-Agent")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ev := &Event{Type: EventBatchCompleted, JobID: "job-1", Timestamp: 1700000000, Data: map[string]int{"total": 2}}
	require.NoError(t, NewNotifier().Deliver(context.Background(), srv.URL, "s3cret", ev))

	assert.Equal(t, "sha256="+Sign("s3cret", gotBody), gotSig)
	assert.Equal(t, "Recipes-Webhook/1.0", gotUA)

	var decoded Event
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, EventBatchCompleted, decoded.Type)
	assert.Equal(t, "job-1", decoded.JobID)
}

func TestDeliver_NoSecretNoSignature(t *testing.T) {
	var hasSig bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSig = r.Header[SignatureHeader]
	}))
	defer srv.Close()

	require.NoError(t, NewNotifier().Deliver(context.Background(), srv.URL, "", &Event{Type: EventBatchCompleted}))
	assert.False(t, hasSig)
}

func TestDeliver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewNotifier().Deliver(context.Background(), srv.URL, "", &Event{Type: EventBatchCompleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDeliverAsync_RetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier()
	n.Delays = []time.Duration{0, time.Millisecond, time.Millisecond, time.Millisecond}

	done := make(chan struct{})
	n.DeliverAsync(srv.URL, "", &Event{Type: EventBatchCompleted, JobID: "j"}, done)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("delivery did not finish")
	}
	assert.Equal(t, int32(3), attempts.Load())
}

func TestSign_Known(t *testing.T) {
	// echo -n 'hello' | openssl dgst -sha256 -hmac key
	assert.Equal(t, "9307b3b915efb5171ff14d8cb55fbcc798c6c0ef1456d66ded1a6aa723a58b7b", Sign("key", []byte("hello")))
}
