package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *ops.Memory
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *ops.Memory) *Handlers {
	return &Handlers{svc: svc}
}

// Request types for each tool

// RememberRequest represents the arguments for memory_remember.
type RememberRequest struct {
	SessionID  string            `json:"session_id"`
	Text       string            `json:"text"`
	MemoryType string            `json:"memory_type,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SearchRequest represents the arguments for memory_search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// ProcessRequest represents the arguments for session_process.
type ProcessRequest struct {
	SessionID string `json:"session_id"`
}

// TimingsRequest represents the arguments for transcript_timings.
type TimingsRequest struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Handler implementations

// HandleRemember handles the memory_remember tool call.
func (h *Handlers) HandleRemember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RememberRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result := h.svc.Remember(ctx, ops.RememberInput{
		SessionID:  input.SessionID,
		Text:       input.Text,
		MemoryType: input.MemoryType,
		Metadata:   input.Metadata,
	})

	payload := map[string]any{"stored": result.Stored}
	if result.SegmentID != "" {
		payload["segment_id"] = result.SegmentID
	}
	if result.Err != nil {
		payload["reason"] = result.Err.Error()
	}
	return successResult(payload)
}

// HandleSearch handles the memory_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.Search(ctx, ops.SearchInput{
		Query: input.Query,
		Limit: input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProcess handles the session_process tool call.
func (h *Handlers) HandleProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProcessRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.svc.ProcessSession(ctx, input.SessionID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTimings handles the transcript_timings tool call.
func (h *Handlers) HandleTimings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TimingsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Timings(ops.TimingsInput{
		Text:     input.Text,
		Duration: input.Duration,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := err.(*errors.CoachError); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
