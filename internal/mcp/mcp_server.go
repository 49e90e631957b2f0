// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mosegui/lookout/internal/contract"
)

// NewMCPServer initializes and configures the Lookout MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Lookout Refactoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_refactoring_scores ---
	s.AddTool(mcp.NewTool("get_refactoring_scores",
		mcp.WithDescription("Rank source files by refactoring priority, combining git churn with length-weighted cyclomatic complexity."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's working directory if not specified).")),
		mcp.WithString("extension", mcp.Description("Source file extension of interest (e.g. '.py'). Defaults to the server configuration.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetRefactoringScores)

	// --- 2. Tool: get_file_complexity ---
	s.AddTool(mcp.NewTool("get_file_complexity",
		mcp.WithDescription("Report the cyclomatic complexity of every function, method and class in one source file."),
		mcp.WithString("file_path", mcp.Description("Path to the source file to analyze."), mcp.Required()),
	), h.handleGetFileComplexity)

	return s
}

// StartMCPServer starts the Lookout MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
