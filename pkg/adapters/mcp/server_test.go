package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/tetrator"
	"github.com/aretw0/tetrator/pkg/adapters/memory"
	"github.com/aretw0/tetrator/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(tetrator.New(tetrator.WithCache(memory.NewCache(0))))
}

func TestHandleTetrate(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	resp, err := s.handleTetrate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"base":   "2",
		"height": "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", resp.Base)
	assert.Equal(t, "3", resp.Height)
	assert.Equal(t, "16", resp.Value)
	assert.Equal(t, 2, resp.Digits)
	assert.False(t, resp.Cached)

	resp, err = s.handleTetrate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"base":   "2",
		"height": "3",
	})
	require.NoError(t, err)
	assert.True(t, resp.Cached)
}

func TestHandleTetrate_DigitsOnly(t *testing.T) {
	s := newTestServer()

	resp, err := s.handleTetrate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"base":        "3",
		"height":      "3",
		"digits_only": true,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Value)
	assert.Equal(t, 13, resp.Digits)
}

func TestHandleTetrate_Errors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantMsg string
	}{
		{"Overflow", map[string]interface{}{"base": "3", "height": "4"}, "overflow"},
		{"Bad Base", map[string]interface{}{"base": "three", "height": "4"}, "invalid base"},
		{"Missing Height", map[string]interface{}{"base": "3"}, "invalid height"},
		{"Oversized Input", map[string]interface{}{"base": strings.Repeat("9", 5000), "height": "1"}, "input rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleTetrate(context.Background(), mcp.CallToolRequest{}, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStructuredHandler_ReportsToolError(t *testing.T) {
	s := newTestServer()
	handler := mcp.NewStructuredToolHandler(s.handleTetrate)

	req := mcp.CallToolRequest{}
	req.Params.Name = "tetrate"
	req.Params.Arguments = map[string]interface{}{"base": "3", "height": "4"}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestCurrentLimits(t *testing.T) {
	limits := currentLimits()
	assert.Equal(t, uint64(4294967295), limits.MaxExponent)
	assert.Equal(t, 32, limits.ExponentBits)
	assert.Equal(t, 256, limits.OperandBits)
}

func TestHandleTetrate_ConfiguredInputLimit(t *testing.T) {
	s := NewServer(tetrator.New(), WithMaxInputSize(5))

	_, err := s.handleTetrate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"base":   "000002",
		"height": "3",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrInputTooLarge)

	resp, err := s.handleTetrate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"base":   "00002",
		"height": "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "16", resp.Value)
}
