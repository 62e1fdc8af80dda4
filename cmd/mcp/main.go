// dexflow MCP server - exposes testnet DEX operations as MCP tools for LLMs
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jmh889/dexflow/internal/chain"
	"github.com/jmh889/dexflow/internal/config"
	"github.com/jmh889/dexflow/internal/logging"
	"github.com/jmh889/dexflow/internal/mcpserver"
)

func main() {
	cfg, err := config.Load(os.Getenv("DEXFLOW_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Stdout carries the MCP protocol; all logging goes to stderr.
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	svc, err := chain.New(chain.Config{
		RPCURL:         cfg.RPCURL,
		PrivateKey:     cfg.PrivateKey,
		ChainID:        cfg.ChainID,
		PoolContract:   cfg.PoolContract,
		RouterContract: cfg.RouterContract,
		FaucetContract: cfg.FaucetContract,
	}, chain.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "chain client: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	s := mcpserver.NewMCPServer(svc, mcpserver.Config{
		Token0:      common.HexToAddress(cfg.Token0Contract),
		Token1:      common.HexToAddress(cfg.Token1Contract),
		SlippageBps: cfg.SlippageBps,
	})

	log.Info("starting MCP server", "wallet", svc.Address(), "rpc", cfg.RPCURL)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}
