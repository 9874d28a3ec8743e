// Package mcp exposes document editing as Model Context Protocol tools so
// an assistant can read and change a to-do document.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/tododoc/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"
)

// tools carries what every handler needs.
type tools struct {
	docs     service.DocumentService
	document string
}

// NewServer creates an MCP server whose tools edit documents through docs.
// Tools act on document unless a call names another.
func NewServer(docs service.DocumentService, document, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tododoc",
		version,
		server.WithToolCapabilities(true),
	)
	t := &tools{docs: docs, document: document}

	s.AddTools(t.all()...)
	return s
}

// all returns every tool with its handler.
func (t *tools) all() []server.ServerTool {
	out := []server.ServerTool{
		{Tool: mcp.NewTool("get_document",
			mcp.WithDescription("Return the to-do document. JSON output is the full tree with node ids; use those ids with the editing tools."),
			withDocument(),
			mcp.WithString("format",
				mcp.Description("json (default) or markdown"),
				mcp.Enum("json", "markdown"),
			),
			mcp.WithString("query",
				mcp.Description("Optional gjson path applied to the JSON tree, e.g. 'children.#.title'"),
			),
		), Handler: t.handleGetDocument},

		{Tool: mcp.NewTool("list_documents",
			mcp.WithDescription("List stored documents with their title and revision."),
		), Handler: t.handleListDocuments},

		{Tool: mcp.NewTool("get_history",
			mcp.WithDescription("List recent actions applied to the document, newest first."),
			withDocument(),
			mcp.WithNumber("limit", mcp.Description("Maximum number of events (default 20)")),
		), Handler: t.handleHistory},
	}
	return append(out, t.mutationTools()...)
}

// Serve runs s over the given streams until ctx ends or input closes.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

func withDocument() mcp.ToolOption {
	return mcp.WithString("document",
		mcp.Description("Document name; defaults to the server's document"),
	)
}

func (t *tools) documentFor(req mcp.CallToolRequest) string {
	return req.GetString("document", t.document)
}

func (t *tools) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := service.FormatJSON
	if f := req.GetString("format", ""); f != "" {
		parsed, err := service.ParseExportFormat(f)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = parsed
	}
	query := req.GetString("query", "")
	if query != "" && format != service.FormatJSON {
		return mcp.NewToolResultError("query only applies to json output"), nil
	}

	var buf bytes.Buffer
	if err := t.docs.Export(ctx, t.documentFor(req), format, &buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}
	if query == "" {
		return mcp.NewToolResultText(buf.String()), nil
	}
	res := gjson.GetBytes(buf.Bytes(), query)
	if !res.Exists() {
		return mcp.NewToolResultError(fmt.Sprintf("query %q matched nothing", query)), nil
	}
	return mcp.NewToolResultText(res.Raw), nil
}

type documentSummary struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Revision int    `json:"revision"`
	Updated  string `json:"updated_at"`
}

func (t *tools) handleListDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := t.docs.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list documents: %v", err)), nil
	}
	out := make([]documentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentSummary{
			Name:     d.Name,
			Title:    d.Title,
			Revision: d.Revision,
			Updated:  d.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return jsonResult(out)
}

type eventView struct {
	Revision int    `json:"revision"`
	Action   string `json:"action"`
	TargetID string `json:"target_id,omitempty"`
	At       string `json:"at"`
}

func (t *tools) handleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	events, err := t.docs.History(ctx, t.documentFor(req), req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read history: %v", err)), nil
	}
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView{
			Revision: e.Revision,
			Action:   e.Action,
			TargetID: e.TargetID,
			At:       e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
