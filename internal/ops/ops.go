// Package ops implements the operations exposed by the CLI, HTTP and MCP
// surfaces: capturing memory segments, semantic search, session processing
// and transcript timing estimation.
package ops

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/config"
	"github.com/ldelaney/coachmem/internal/embedding"
)

// Memory bundles the dependencies every memory operation needs. All
// surfaces share one instance; nothing in this package reaches for
// globals.
type Memory struct {
	DB      *sql.DB
	Cfg     *config.Config
	Gateway embedding.Gateway
	Log     *logrus.Logger
}

// NewMemory wires a Memory service. A nil logger gets a default one so
// call sites and tests can skip logger setup.
func NewMemory(database *sql.DB, cfg *config.Config, gateway embedding.Gateway, log *logrus.Logger) *Memory {
	if log == nil {
		log = logrus.New()
	}
	return &Memory{
		DB:      database,
		Cfg:     cfg,
		Gateway: gateway,
		Log:     log,
	}
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
