package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/config"
	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/ops"
)

type stubGateway struct {
	vector []float32
}

func (g *stubGateway) Embed(_ context.Context, _ string) ([]float32, error) {
	if g.vector == nil {
		return nil, errors.NewEmbeddingFailed(nil)
	}
	return g.vector, nil
}

func testServer(t *testing.T, gateway *stubGateway) (http.Handler, *ops.Memory) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := ops.NewMemory(database, config.DefaultConfig(), gateway, log)
	return NewServer(svc, "127.0.0.1", 0).Handler, svc
}

func doJSON(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleLogMessage(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "POST", "/sessions/s1/messages",
		`{"sender": "user", "text": "hello coach"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"id"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleLogMessage_BadSender(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "POST", "/sessions/s1/messages",
		`{"sender": "narrator", "text": "hello"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleRemember_AcceptsImmediately(t *testing.T) {
	handler, svc := testServer(t, &stubGateway{vector: []float32{1, 0}})

	w := doJSON(handler, "POST", "/sessions/s1/remember",
		`{"text": "client wants to change careers"}`)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}

	// The capture happens in the background; wait for it to land.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		segments, err := db.RecentSegments(context.Background(), svc.DB, 10)
		if err != nil {
			t.Fatalf("RecentSegments failed: %v", err)
		}
		if len(segments) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("background capture never stored the segment")
}

func TestHandleRemember_GatewayFailureStillAccepted(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{}) // embedding always fails

	w := doJSON(handler, "POST", "/sessions/s1/remember",
		`{"text": "will be dropped"}`)

	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202 even when capture will fail", w.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	handler, svc := testServer(t, &stubGateway{vector: []float32{1, 0}})

	result := svc.Remember(context.Background(), ops.RememberInput{
		SessionID: "s1",
		Text:      "training plan discussion",
	})
	if !result.Stored {
		t.Fatalf("seed failed: %v", result.Err)
	}

	w := doJSON(handler, "GET", "/memory/search?q=training", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "training plan discussion") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "GET", "/memory/search", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleTimings(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "POST", "/timings",
		`{"text": "Take a deep breath.", "duration": 2.5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"offsets"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleTimings_InvalidDuration(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "POST", "/timings", `{"text": "hello", "duration": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleNotes(t *testing.T) {
	handler, svc := testServer(t, &stubGateway{vector: []float32{1}})

	_, err := svc.LogMessage(context.Background(), ops.LogMessageInput{
		SessionID: "s1", Sender: "user", Text: "checking in", Timestamp: 1,
	})
	if err != nil {
		t.Fatalf("LogMessage failed: %v", err)
	}

	w := doJSON(handler, "GET", "/sessions/s1/notes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "checking in") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleNotes_UnknownSession(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "GET", "/sessions/ghost/notes", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler, _ := testServer(t, &stubGateway{vector: []float32{1}})

	w := doJSON(handler, "GET", "/memory/search?q=x", "")
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}
