package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mosegui/lookout/internal/contract"
	mcp_internal "github.com/mosegui/lookout/internal/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		TargetDir: ".",
		Extension: ".py",
		Workers:   1,
	}

	// Create a dummy manager, though we shouldn't hit it because we test validation errors
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("get_refactoring_scores bad extension", func(t *testing.T) {
		tool := s.GetTool("get_refactoring_scores")
		require.NotNil(t, tool, "Tool get_refactoring_scores should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_refactoring_scores",
				Arguments: map[string]any{
					"extension": "py", // Missing leading dot
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "extension must start with '.'")
	})

	t.Run("get_refactoring_scores bad repo path", func(t *testing.T) {
		tool := s.GetTool("get_refactoring_scores")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_refactoring_scores",
				Arguments: map[string]any{
					"repo_path": "/definitely/not/a/real/dir",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid repo_path")
	})

	t.Run("get_file_complexity missing file_path", func(t *testing.T) {
		tool := s.GetTool("get_file_complexity")
		require.NotNil(t, tool, "Tool get_file_complexity should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_file_complexity",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "file_path is required")
	})

	t.Run("get_file_complexity nonexistent file", func(t *testing.T) {
		tool := s.GetTool("get_file_complexity")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_file_complexity",
				Arguments: map[string]any{
					"file_path": "/definitely/not/a/real/file.py",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "cannot analyze")
	})
}
