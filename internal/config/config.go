// Package config loads coachmem configuration from baseDir/config.json,
// with environment variables (optionally via a .env file) supplying
// secrets such as the OpenAI API key.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// EmbeddingModel is the OpenAI embedding model used for memory capture
	// and search. Both sides must use the same model or similarities are
	// meaningless.
	EmbeddingModel string `json:"embedding_model"`

	// EmbeddingDimension is the expected vector length. Stored segments
	// whose vectors do not match simply score zero during search.
	EmbeddingDimension int `json:"embedding_dimension"`

	// SimilarityThreshold is the minimum cosine similarity a candidate
	// needs to count as relevant.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// SearchLimit is the default maximum number of search results.
	SearchLimit int `json:"search_limit"`

	// CandidateCap bounds how many recent segments one search scans.
	// This is a deliberate scale limitation, not an ANN index; replace the
	// store with a vector database before segment volume grows large.
	CandidateCap int `json:"candidate_cap"`

	// SegmentWindow is how many recent session messages one memory pass
	// scans for user/coach pairs.
	SegmentWindow int `json:"segment_window"`

	// DBMaxOpenConns limits the maximum number of open database
	// connections. 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database
	// connections. 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimension:  1536,
		SimilarityThreshold: 0.7,
		SearchLimit:         5,
		CandidateCap:        100,
		SegmentWindow:       20,
	}
}

// Load loads configuration from baseDir/config.json. Returns default
// config if the file doesn't exist. The baseDir parameter allows tests to
// use t.TempDir() instead of ~/.coachmem.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// LoadEnv loads environment variables from baseDir/.env if present.
// Missing files are fine; variables already set in the environment win.
func LoadEnv(baseDir string) {
	_ = godotenv.Load(filepath.Join(baseDir, ".env"))
}

// OpenAIKey returns the OpenAI API key from the environment.
func OpenAIKey() string {
	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for scalars when non-zero; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.EmbeddingModel = overlay.EmbeddingModel
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = base.EmbeddingModel
	}

	result.EmbeddingDimension = overlay.EmbeddingDimension
	if result.EmbeddingDimension == 0 {
		result.EmbeddingDimension = base.EmbeddingDimension
	}

	result.SimilarityThreshold = overlay.SimilarityThreshold
	if result.SimilarityThreshold == 0 {
		result.SimilarityThreshold = base.SimilarityThreshold
	}

	result.SearchLimit = overlay.SearchLimit
	if result.SearchLimit == 0 {
		result.SearchLimit = base.SearchLimit
	}

	result.CandidateCap = overlay.CandidateCap
	if result.CandidateCap == 0 {
		result.CandidateCap = base.CandidateCap
	}

	result.SegmentWindow = overlay.SegmentWindow
	if result.SegmentWindow == 0 {
		result.SegmentWindow = base.SegmentWindow
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
