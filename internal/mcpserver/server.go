// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only practice tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/therapynotes/internal/clientservice"
)

// Server wraps the MCP server with practice tools. All tools are
// read-only; mutations stay behind the REST API.
type Server struct {
	mcp *server.MCPServer
	svc *clientservice.Service
}

// New creates a new MCP server with all practice tools registered.
func New(svc *clientservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Therapy Notes",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_clients",
		mcp.WithDescription("List the active client roster with ids, names, and session counts."),
	), s.listClients)

	s.mcp.AddTool(mcp.NewTool("get_client",
		mcp.WithDescription("Read a client's full record including the session history."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Client id or CL-### code")),
	), s.getClient)

	s.mcp.AddTool(mcp.NewTool("search_session_notes",
		mcp.WithDescription("Full-text search through session notes and follow-up notes."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchSessionNotes)

	s.mcp.AddTool(mcp.NewTool("upcoming_followups",
		mcp.WithDescription("List the follow-ups scheduled strictly in the future, soonest first."),
	), s.upcomingFollowUps)

	s.mcp.AddTool(mcp.NewTool("upcoming_appointments",
		mcp.WithDescription("List directly scheduled appointments strictly in the future."),
	), s.upcomingAppointments)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listClients(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type item struct {
		ID           string `json:"id"`
		ClientID     string `json:"clientId"`
		Name         string `json:"name"`
		Status       string `json:"status"`
		SessionCount int    `json:"sessionCount"`
	}
	clients := s.svc.Clients(ctx)
	items := make([]item, 0, len(clients))
	for _, c := range clients {
		items = append(items, item{
			ID:           c.ID,
			ClientID:     c.ClientID,
			Name:         c.Name,
			Status:       c.Status,
			SessionCount: c.SessionCount,
		})
	}
	return jsonResult(items), nil
}

func (s *Server) getClient(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, lookupErr := s.svc.GetClient(ctx, id)
	if lookupErr != nil {
		// Also accept the human-facing CL-### code.
		for _, candidate := range s.svc.Clients(ctx) {
			if candidate.ClientID == id {
				out := candidate
				c, lookupErr = &out, nil
				break
			}
		}
	}
	if lookupErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return jsonResult(c), nil
}

func (s *Server) searchSessionNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results), nil
}

func (s *Server) upcomingFollowUps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.UpcomingFollowUps(ctx)), nil
}

func (s *Server) upcomingAppointments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.UpcomingAppointments(ctx)), nil
}
