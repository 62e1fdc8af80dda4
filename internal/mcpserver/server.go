package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/jmh889/dexflow/internal/chain"
)

// NewMCPServer creates a configured MCP server with all dexflow tools registered.
func NewMCPServer(svc chain.Service, cfg Config) *server.MCPServer {
	s := server.NewMCPServer("dexflow", "1.0.0")
	h := NewHandlers(svc, cfg)

	s.AddTool(ToolFaucetRequest, h.HandleFaucetRequest)
	s.AddTool(ToolGetBalance, h.HandleGetBalance)
	s.AddTool(ToolTransferToken, h.HandleTransferToken)
	s.AddTool(ToolApproveToken, h.HandleApproveToken)
	s.AddTool(ToolGetPool, h.HandleGetPool)
	s.AddTool(ToolSwapTokens, h.HandleSwapTokens)
	s.AddTool(ToolAddLiquidity, h.HandleAddLiquidity)
	s.AddTool(ToolRemoveLiquidity, h.HandleRemoveLiquidity)
	s.AddTool(ToolGetFees, h.HandleGetFees)
	s.AddTool(ToolCollectFees, h.HandleCollectFees)
	s.AddTool(ToolValidateAddress, h.HandleValidateAddress)
	s.AddTool(ToolEncodeMemo, h.HandleEncodeMemo)
	s.AddTool(ToolConvertTick, h.HandleConvertTick)

	return s
}
