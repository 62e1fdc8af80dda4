package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jmh889/dexflow/internal/addr"
	"github.com/jmh889/dexflow/internal/amount"
	"github.com/jmh889/dexflow/internal/chain"
	"github.com/jmh889/dexflow/internal/logging"
	"github.com/jmh889/dexflow/internal/memo"
	"github.com/jmh889/dexflow/internal/tickmath"
)

// app holds the chain client and the token bindings the on-chain
// commands operate against.
type app struct {
	svc         chain.Service
	token0      common.Address
	token1      common.Address
	slippageBps int
	timeout     time.Duration
	out         io.Writer
}

// resolveToken maps a -token flag value to a contract address.
func (a *app) resolveToken(name string) (common.Address, error) {
	switch strings.ToLower(name) {
	case "", "token0":
		return a.token0, nil
	case "token1":
		return a.token1, nil
	default:
		canonical, err := addr.Validate(name)
		if err != nil {
			return common.Address{}, err
		}
		return common.HexToAddress(canonical), nil
	}
}

func (a *app) resolveAddress(s string) (common.Address, error) {
	if s == "" {
		return common.HexToAddress(a.svc.Address()), nil
	}
	canonical, err := addr.Validate(s)
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(canonical), nil
}

// report prints a submitted transaction and optionally waits for it to mine.
func (a *app) report(ctx context.Context, result *chain.TxResult, wait bool) error {
	fmt.Fprintf(a.out, "Transaction: %s\n", result.TxHash)
	if !wait {
		return nil
	}
	logging.FromContext(ctx).Debug("waiting for confirmation",
		"tx", result.TxHash, "timeout", a.timeout)
	mined, err := a.svc.WaitForConfirmation(ctx, result.TxHash, a.timeout)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Confirmed in block %d (gas used: %d)\n", mined.BlockNumber, mined.GasUsed)
	return nil
}

func (a *app) cmdFaucet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("faucet", flag.ContinueOnError)
	to := fs.String("to", "", "recipient address (default: own wallet)")
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	recipient, err := a.resolveAddress(*to)
	if err != nil {
		return err
	}

	result, err := a.svc.FaucetDrip(ctx, recipient)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Faucet drip requested for %s\n", addr.Truncate(recipient.Hex()))
	return a.report(ctx, result, *wait)
}

func (a *app) cmdBalance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	of := fs.String("of", "", "address to query (default: own wallet)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	owner, err := a.resolveAddress(*of)
	if err != nil {
		return err
	}

	bal0, err := a.svc.BalanceOf(ctx, a.token0, owner)
	if err != nil {
		return err
	}
	bal1, err := a.svc.BalanceOf(ctx, a.token1, owner)
	if err != nil {
		return err
	}
	native, err := a.svc.NativeBalance(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Balances for %s:\n", owner.Hex())
	fmt.Fprintf(a.out, "  token0: %s\n", amount.Format(bal0))
	fmt.Fprintf(a.out, "  token1: %s\n", amount.Format(bal1))
	fmt.Fprintf(a.out, "  native: %s wei\n", native.String())
	return nil
}

func (a *app) cmdTransfer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ContinueOnError)
	to := fs.String("to", "", "recipient address (required)")
	amt := fs.String("amount", "", "amount to send (required)")
	token := fs.String("token", "token0", "token0, token1, or a contract address")
	note := fs.String("memo", "", "memo text, up to 31 bytes")
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("transfer: -to is required")
	}
	if *amt == "" {
		return fmt.Errorf("transfer: -amount is required")
	}

	recipient, err := a.resolveAddress(*to)
	if err != nil {
		return err
	}
	value, err := amount.Parse(*amt)
	if err != nil {
		return err
	}
	tokenAddr, err := a.resolveToken(*token)
	if err != nil {
		return err
	}

	var result *chain.TxResult
	if *note != "" {
		result, err = a.svc.TransferWithMemo(ctx, tokenAddr, recipient, value, *note)
	} else {
		result, err = a.svc.Transfer(ctx, tokenAddr, recipient, value)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sent %s to %s\n", amount.Format(value), addr.Truncate(recipient.Hex()))
	return a.report(ctx, result, *wait)
}

func (a *app) cmdApprove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ContinueOnError)
	spender := fs.String("spender", "", "spender address (required)")
	amt := fs.String("amount", "", "allowance to set (required; 0 revokes)")
	token := fs.String("token", "token0", "token0, token1, or a contract address")
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *spender == "" {
		return fmt.Errorf("approve: -spender is required")
	}
	if *amt == "" {
		return fmt.Errorf("approve: -amount is required")
	}

	spenderAddr, err := a.resolveAddress(*spender)
	if err != nil {
		return err
	}
	value, err := amount.Parse(*amt)
	if err != nil {
		return err
	}
	tokenAddr, err := a.resolveToken(*token)
	if err != nil {
		return err
	}

	result, err := a.svc.Approve(ctx, tokenAddr, spenderAddr, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Approved %s for %s\n", amount.Format(value), addr.Truncate(spenderAddr.Hex()))
	return a.report(ctx, result, *wait)
}

func (a *app) cmdAllowance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("allowance", flag.ContinueOnError)
	owner := fs.String("owner", "", "owner address (default: own wallet)")
	spender := fs.String("spender", "", "spender address (required)")
	token := fs.String("token", "token0", "token0, token1, or a contract address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *spender == "" {
		return fmt.Errorf("allowance: -spender is required")
	}

	ownerAddr, err := a.resolveAddress(*owner)
	if err != nil {
		return err
	}
	spenderAddr, err := a.resolveAddress(*spender)
	if err != nil {
		return err
	}
	tokenAddr, err := a.resolveToken(*token)
	if err != nil {
		return err
	}

	value, err := a.svc.Allowance(ctx, tokenAddr, ownerAddr, spenderAddr)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Allowance: %s\n", amount.Format(value))
	return nil
}

func (a *app) cmdPool(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pool", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := a.svc.PoolState(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Pool state:")
	fmt.Fprintf(a.out, "  Price (token1/token0): %g\n", state.Price)
	fmt.Fprintf(a.out, "  Tick: %d\n", state.Tick)
	fmt.Fprintf(a.out, "  Liquidity: %s\n", state.Liquidity.String())
	fmt.Fprintf(a.out, "  Fee: %d bps\n", state.FeeBps)
	fmt.Fprintf(a.out, "  token0: %s\n", state.Token0.Hex())
	fmt.Fprintf(a.out, "  token1: %s\n", state.Token1.Hex())
	return nil
}

func (a *app) cmdSwap(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("swap", flag.ContinueOnError)
	direction := fs.String("direction", "", "'0to1' or '1to0' (required)")
	amt := fs.String("amount", "", "input amount (required)")
	bps := fs.Int("slippage-bps", -1, "slippage tolerance in basis points")
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *amt == "" {
		return fmt.Errorf("swap: -amount is required")
	}

	var zeroForOne bool
	switch *direction {
	case "0to1":
		zeroForOne = true
	case "1to0":
		zeroForOne = false
	default:
		return fmt.Errorf("swap: -direction must be '0to1' or '1to0'")
	}

	amountIn, err := amount.Parse(*amt)
	if err != nil {
		return err
	}

	slippage := a.slippageBps
	if *bps >= 0 {
		slippage = *bps
	}

	result, err := a.svc.Swap(ctx, chain.SwapParams{
		ZeroForOne:  zeroForOne,
		AmountIn:    amountIn,
		SlippageBps: slippage,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Swap %s: in %s, quoted out %s, minimum out %s\n",
		*direction, amount.Format(result.AmountIn),
		amount.Format(result.QuotedOut), amount.Format(result.MinAmountOut))
	return a.report(ctx, &result.TxResult, *wait)
}

func (a *app) cmdAddLiquidity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-liquidity", flag.ContinueOnError)
	lower := fs.Float64("lower", 0, "lower price bound (required)")
	upper := fs.Float64("upper", 0, "upper price bound (required)")
	amt0 := fs.String("amount0", "", "token0 amount (required)")
	amt1 := fs.String("amount1", "", "token1 amount (required)")
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lower == 0 || *upper == 0 {
		return fmt.Errorf("add-liquidity: -lower and -upper are required")
	}
	if *amt0 == "" || *amt1 == "" {
		return fmt.Errorf("add-liquidity: -amount0 and -amount1 are required")
	}

	amount0, err := amount.Parse(*amt0)
	if err != nil {
		return err
	}
	amount1, err := amount.Parse(*amt1)
	if err != nil {
		return err
	}

	result, err := a.svc.AddLiquidity(ctx, chain.LiquidityParams{
		LowerPrice: *lower,
		UpperPrice: *upper,
		Amount0:    amount0,
		Amount1:    amount1,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Liquidity added over [%g, %g]\n", *lower, *upper)
	return a.report(ctx, result, *wait)
}

func (a *app) cmdRemoveLiquidity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-liquidity", flag.ContinueOnError)
	liq := fs.String("liquidity", "", "liquidity to burn (required)")
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *liq == "" {
		return fmt.Errorf("remove-liquidity: -liquidity is required")
	}

	// Liquidity is the raw integer unit the pool command reports, not a
	// 6-decimal token amount.
	liquidity, ok := new(big.Int).SetString(*liq, 10)
	if !ok {
		return fmt.Errorf("remove-liquidity: %q is not an integer", *liq)
	}

	result, err := a.svc.RemoveLiquidity(ctx, liquidity)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Burning %s liquidity\n", result.Liquidity.String())
	fmt.Fprintf(a.out, "  Expected token0: %s\n", amount.Format(result.Expected0))
	fmt.Fprintf(a.out, "  Expected token1: %s\n", amount.Format(result.Expected1))
	return a.report(ctx, &result.TxResult, *wait)
}

func (a *app) cmdFees(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fees", flag.ContinueOnError)
	of := fs.String("of", "", "position owner (default: own wallet)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	owner, err := a.resolveAddress(*of)
	if err != nil {
		return err
	}

	fees, err := a.svc.PendingFees(ctx, owner)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Accrued fees for %s:\n", addr.Truncate(owner.Hex()))
	fmt.Fprintf(a.out, "  token0: %s\n", amount.Format(fees.Amount0))
	fmt.Fprintf(a.out, "  token1: %s\n", amount.Format(fees.Amount1))
	return nil
}

func (a *app) cmdCollect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	wait := fs.Bool("wait", false, "wait for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.svc.CollectFees(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Fee collection submitted")
	return a.report(ctx, result, *wait)
}

// Offline commands.

func cmdAddress(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("address", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("address: expected one address argument")
	}

	canonical, err := addr.Validate(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Checksummed: %s\n", canonical)
	fmt.Fprintf(out, "Display: %s\n", addr.Truncate(canonical))
	return nil
}

func cmdMemo(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("memo", flag.ContinueOnError)
	decode := fs.Bool("decode", false, "decode a hex memo field instead of encoding")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("memo: expected one text argument")
	}

	if *decode {
		text, err := memo.Decode(fs.Arg(0))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	encoded, err := memo.Encode(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, encoded)
	return nil
}

func cmdTick(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tick", flag.ContinueOnError)
	price := fs.Float64("price", 0, "price to convert to a tick")
	tick := fs.Int("tick", 0, "tick to convert to a price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var hasPrice, hasTick bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "price":
			hasPrice = true
		case "tick":
			hasTick = true
		}
	})

	switch {
	case hasPrice && hasTick:
		return fmt.Errorf("tick: give either -price or -tick, not both")
	case hasPrice:
		t, err := tickmath.PriceToTick(*price)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Price %g -> tick %d\n", *price, t)
		return nil
	case hasTick:
		p, err := tickmath.TickToPrice(*tick)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Tick %d -> price %g\n", *tick, p)
		return nil
	default:
		return fmt.Errorf("tick: give either -price or -tick")
	}
}
