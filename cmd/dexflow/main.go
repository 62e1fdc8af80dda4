// dexflow CLI - testnet DEX operations from the command line
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jmh889/dexflow/internal/chain"
	"github.com/jmh889/dexflow/internal/config"
	"github.com/jmh889/dexflow/internal/logging"
)

const usage = `dexflow - testnet DEX operations

Usage: dexflow <command> [flags]

On-chain commands:
  faucet            Request testnet tokens from the faucet
  balance           Show token and native balances
  transfer          Send tokens, optionally with a memo
  approve           Approve a spender allowance
  allowance         Show a spender allowance
  pool              Show pool price, tick, liquidity, and fee
  swap              Swap tokens with slippage protection
  add-liquidity     Provide liquidity over a price range
  remove-liquidity  Burn liquidity and withdraw tokens
  fees              Show accrued position fees
  collect           Collect accrued fees

Offline commands:
  address           Validate and checksum an address
  memo              Encode text as a 32-byte memo field
  tick              Convert between prices and tick indices

Configuration comes from environment variables (PRIVATE_KEY, RPC_URL,
contract addresses) or a TOML file named by DEXFLOW_CONFIG.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Print(usage)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "dexflow: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	// Offline commands need no configuration or RPC connection.
	switch cmd {
	case "address":
		return cmdAddress(args, os.Stdout)
	case "memo":
		return cmdMemo(args, os.Stdout)
	case "tick":
		return cmdTick(args, os.Stdout)
	}

	cfg, err := config.Load(os.Getenv("DEXFLOW_CONFIG"))
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx = logging.WithLogger(ctx, log)

	svc, err := chain.New(chain.Config{
		RPCURL:         cfg.RPCURL,
		PrivateKey:     cfg.PrivateKey,
		ChainID:        cfg.ChainID,
		PoolContract:   cfg.PoolContract,
		RouterContract: cfg.RouterContract,
		FaucetContract: cfg.FaucetContract,
	}, chain.WithLogger(log))
	if err != nil {
		return err
	}
	defer svc.Close()

	app := &app{
		svc:         svc,
		token0:      common.HexToAddress(cfg.Token0Contract),
		token1:      common.HexToAddress(cfg.Token1Contract),
		slippageBps: cfg.SlippageBps,
		timeout:     cfg.ConfirmationTimeout,
		out:         os.Stdout,
	}

	switch cmd {
	case "faucet":
		return app.cmdFaucet(ctx, args)
	case "balance":
		return app.cmdBalance(ctx, args)
	case "transfer":
		return app.cmdTransfer(ctx, args)
	case "approve":
		return app.cmdApprove(ctx, args)
	case "allowance":
		return app.cmdAllowance(ctx, args)
	case "pool":
		return app.cmdPool(ctx, args)
	case "swap":
		return app.cmdSwap(ctx, args)
	case "add-liquidity":
		return app.cmdAddLiquidity(ctx, args)
	case "remove-liquidity":
		return app.cmdRemoveLiquidity(ctx, args)
	case "fees":
		return app.cmdFees(ctx, args)
	case "collect":
		return app.cmdCollect(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
