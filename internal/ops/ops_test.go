package ops

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/config"
	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
)

// fakeGateway returns canned vectors keyed by text. Unknown texts get
// the fallback vector; a nil fallback simulates provider failure.
type fakeGateway struct {
	vectors  map[string][]float32
	fallback []float32
	calls    int
}

func (g *fakeGateway) Embed(_ context.Context, text string) ([]float32, error) {
	g.calls++
	if v, ok := g.vectors[text]; ok {
		return v, nil
	}
	if g.fallback == nil {
		return nil, errors.NewEmbeddingFailed(nil)
	}
	return g.fallback, nil
}

func testMemory(t *testing.T, gateway *fakeGateway) *Memory {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewMemory(database, config.DefaultConfig(), gateway, log)
}
