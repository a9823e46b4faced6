// ABOUTME: MCP tool definitions and registration for the threat intel server
// ABOUTME: Exposes query, ingest, status, reset, and feedback tools over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/intelforge/threatscope/internal/ingestion"
	"github.com/intelforge/threatscope/internal/pipeline"
	"github.com/intelforge/threatscope/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, p *pipeline.Pipeline, ingestor *ingestion.Ingestor, index *storage.VectorIndex, backend string) *Handlers {
	handlers := &Handlers{
		pipeline: p,
		ingestor: ingestor,
		index:    index,
		backend:  backend,
	}

	server.AddTool(mcp.Tool{
		Name:        "query_threat_intel",
		Description: "Answer a natural-language question about threat actors, grounded in retrieved evidence with calibrated confidence.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question about threat-actor intelligence",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.QueryThreatIntel)

	server.AddTool(mcp.Tool{
		Name:        "ingest_actors",
		Description: "Ingest threat-actor profiles from a JSON file into the vector index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to a JSON file holding an array of threat-actor profiles",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestActors)

	server.AddTool(mcp.Tool{
		Name:        "index_status",
		Description: "Report the number of indexed chunks and the configured generation backend.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStatus)

	server.AddTool(mcp.Tool{
		Name:        "reset_index",
		Description: "Delete every chunk in the vector index. Requires confirm=true.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"confirm": map[string]interface{}{
					"type":        "boolean",
					"description": "Must be true to reset the index",
				},
			},
			Required: []string{"confirm"},
		},
	}, handlers.ResetIndex)

	server.AddTool(mcp.Tool{
		Name:        "submit_feedback",
		Description: "Record analyst feedback for a previously answered query trace.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"trace_id": map[string]interface{}{
					"type":        "string",
					"description": "Trace ID returned by query_threat_intel",
				},
				"rating": map[string]interface{}{
					"type":        "number",
					"description": "Rating from 1 (poor) to 5 (excellent)",
				},
				"relevance": map[string]interface{}{
					"type":        "string",
					"description": "How relevant the answer was (e.g. high, partial, off-topic)",
				},
				"accuracy": map[string]interface{}{
					"type":        "string",
					"description": "How accurate the answer was (e.g. accurate, mixed, wrong)",
				},
			},
			Required: []string{"trace_id", "rating"},
		},
	}, handlers.SubmitFeedback)

	return handlers
}
