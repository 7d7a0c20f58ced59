package ops

import (
	"context"
	"sort"
	"strings"

	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required
	Limit int    // default: cfg.SearchLimit
}

// SearchOutput contains the ranked search results.
type SearchOutput struct {
	Results []memory.ScoredSegment `json:"results"`
	Scanned int                    `json:"scanned"`
}

// Search embeds the query and ranks recent segments by cosine
// similarity. Only segments above the relevance threshold are
// returned, best match first. Downstream failures (embedding provider,
// storage) degrade to an empty result set rather than an error; an
// empty query is the one caller mistake that is reported.
func (m *Memory) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = m.Cfg.SearchLimit
	}

	queryVector, err := m.Gateway.Embed(ctx, query)
	if err != nil {
		m.Log.WithError(err).Warn("search: query embedding failed, returning no results")
		return &SearchOutput{Results: []memory.ScoredSegment{}}, nil
	}

	candidates, err := db.RecentSegments(ctx, m.DB, m.Cfg.CandidateCap)
	if err != nil {
		m.Log.WithError(err).Warn("search: candidate load failed, returning no results")
		return &SearchOutput{Results: []memory.ScoredSegment{}}, nil
	}

	results := make([]memory.ScoredSegment, 0, len(candidates))
	for _, seg := range candidates {
		score := memory.CosineSimilarity(queryVector, seg.Embedding)
		if score > m.Cfg.SimilarityThreshold {
			results = append(results, memory.ScoredSegment{Segment: *seg, Similarity: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return &SearchOutput{
		Results: results,
		Scanned: len(candidates),
	}, nil
}
