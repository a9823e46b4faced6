// ABOUTME: MCP tool handler implementations for the threat intel server
// ABOUTME: Handlers return tool errors, never protocol errors, for expected failures
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/intelforge/threatscope/internal/evaluation"
	"github.com/intelforge/threatscope/internal/ingestion"
	"github.com/intelforge/threatscope/internal/pipeline"
	"github.com/intelforge/threatscope/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline *pipeline.Pipeline
	ingestor *ingestion.Ingestor
	index    *storage.VectorIndex
	backend  string
}

// QueryThreatIntel handles the query_threat_intel tool
func (h *Handlers) QueryThreatIntel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	resp, err := h.pipeline.Ask(ctx, query)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuery) {
			return mcp.NewToolResultError("query cannot be empty"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	return jsonResult(resp)
}

// IngestActors handles the ingest_actors tool
func (h *Handlers) IngestActors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	result, err := h.ingestor.IngestFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return jsonResult(result)
}

// IndexStatus handles the index_status tool
func (h *Handlers) IndexStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := h.index.Count(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read index: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"chunk_count": count,
		"backend":     h.backend,
	})
}

// ResetIndex handles the reset_index tool
func (h *Handlers) ResetIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	confirm, err := request.RequireBool("confirm")
	if err != nil || !confirm {
		return mcp.NewToolResultError("confirm=true is required to reset the index"), nil
	}

	if err := h.index.Reset(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"reset": true})
}

// SubmitFeedback handles the submit_feedback tool
func (h *Handlers) SubmitFeedback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traceID, err := request.RequireString("trace_id")
	if err != nil {
		return mcp.NewToolResultError("trace_id argument is required and must be a string"), nil
	}
	rating, err := request.RequireInt("rating")
	if err != nil || rating < 1 || rating > 5 {
		return mcp.NewToolResultError("rating must be a number from 1 to 5"), nil
	}

	h.pipeline.Feedback(traceID, evaluation.Feedback{
		Rating:    rating,
		Relevance: request.GetString("relevance", ""),
		Accuracy:  request.GetString("accuracy", ""),
	})

	return jsonResult(map[string]interface{}{"recorded": true, "trace_id": traceID})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
