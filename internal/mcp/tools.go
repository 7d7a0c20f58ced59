package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var rememberToolDef = mcp.NewTool("memory_remember",
	mcp.WithDescription("Store a piece of coaching conversation in long-term memory. Capture is best-effort: the result reports whether the segment was stored."),
	mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Coaching session the memory belongs to"),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to remember"),
	),
	mcp.WithString("memory_type",
		mcp.Description("One of: conversation, insight, action (default: conversation)"),
	),
)

var searchToolDef = mcp.NewTool("memory_search",
	mcp.WithDescription("Search long-term coach memory by semantic similarity. Returns only segments above the relevance threshold, best match first."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("What to look for in past conversations"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results (default: 5)"),
	),
)

var processToolDef = mcp.NewTool("session_process",
	mcp.WithDescription("Extract user/coach exchange pairs from a session's recent history and store each as a conversation memory."),
	mcp.WithString("session_id",
		mcp.Required(),
		mcp.Description("Session to process"),
	),
)

var timingsToolDef = mcp.NewTool("transcript_timings",
	mcp.WithDescription("Estimate per-word start offsets for a transcript across an audio duration, for word-level playback highlighting."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Transcript text"),
	),
	mcp.WithNumber("duration",
		mcp.Required(),
		mcp.Description("Audio duration in seconds"),
	),
)
