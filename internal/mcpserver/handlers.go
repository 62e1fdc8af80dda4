package mcpserver

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmh889/dexflow/internal/addr"
	"github.com/jmh889/dexflow/internal/amount"
	"github.com/jmh889/dexflow/internal/chain"
	"github.com/jmh889/dexflow/internal/memo"
	"github.com/jmh889/dexflow/internal/tickmath"
)

// Config holds the token bindings and trade defaults for the tool handlers.
type Config struct {
	Token0      common.Address
	Token1      common.Address
	SlippageBps int // default slippage tolerance when a tool call gives none
}

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	svc chain.Service
	cfg Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc chain.Service, cfg Config) *Handlers {
	return &Handlers{svc: svc, cfg: cfg}
}

// resolveToken maps a tool argument to a token contract address.
func (h *Handlers) resolveToken(name string) (common.Address, error) {
	switch strings.ToLower(name) {
	case "", "token0":
		return h.cfg.Token0, nil
	case "token1":
		return h.cfg.Token1, nil
	default:
		canonical, err := addr.Validate(name)
		if err != nil {
			return common.Address{}, err
		}
		return common.HexToAddress(canonical), nil
	}
}

// resolveAddress validates an address argument, defaulting to the wallet.
func (h *Handlers) resolveAddress(s string) (common.Address, error) {
	if s == "" {
		return common.HexToAddress(h.svc.Address()), nil
	}
	canonical, err := addr.Validate(s)
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(canonical), nil
}

// HandleFaucetRequest asks the faucet for testnet funds.
func (h *Handlers) HandleFaucetRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	to, err := h.resolveAddress(req.GetString("address", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.svc.FaucetDrip(ctx, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Faucet request failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Faucet drip requested for %s\nTransaction: %s",
		addr.Truncate(to.Hex()), result.TxHash)), nil
}

// HandleGetBalance reports token and native balances.
func (h *Handlers) HandleGetBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := h.resolveAddress(req.GetString("address", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bal0, err := h.svc.BalanceOf(ctx, h.cfg.Token0, owner)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read token0 balance: %v", err)), nil
	}
	bal1, err := h.svc.BalanceOf(ctx, h.cfg.Token1, owner)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read token1 balance: %v", err)), nil
	}
	native, err := h.svc.NativeBalance(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read native balance: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Balances for %s:\n", owner.Hex())
	fmt.Fprintf(&sb, "  token0: %s\n", amount.Format(bal0))
	fmt.Fprintf(&sb, "  token1: %s\n", amount.Format(bal1))
	fmt.Fprintf(&sb, "  native: %s wei\n", native.String())
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleTransferToken sends tokens, optionally with an on-chain memo.
func (h *Handlers) HandleTransferToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipient := req.GetString("recipient", "")
	if recipient == "" {
		return mcp.NewToolResultError("recipient is required"), nil
	}
	to, err := h.resolveAddress(recipient)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	value, err := getAmount(req, "amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	token, err := h.resolveToken(req.GetString("token", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	note := req.GetString("memo", "")

	var result *chain.TxResult
	if note != "" {
		result, err = h.svc.TransferWithMemo(ctx, token, to, value, note)
	} else {
		result, err = h.svc.Transfer(ctx, token, to, value)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Transfer failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Sent %s to %s\n", amount.Format(value), addr.Truncate(to.Hex()))
	if note != "" {
		fmt.Fprintf(&sb, "Memo: %s\n", note)
	}
	fmt.Fprintf(&sb, "Transaction: %s", result.TxHash)
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleApproveToken sets a spender allowance.
func (h *Handlers) HandleApproveToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spenderArg := req.GetString("spender", "")
	if spenderArg == "" {
		return mcp.NewToolResultError("spender is required"), nil
	}
	spender, err := h.resolveAddress(spenderArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	value, err := getAmount(req, "amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	token, err := h.resolveToken(req.GetString("token", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.svc.Approve(ctx, token, spender, value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Approval failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Approved %s for spender %s\nTransaction: %s",
		amount.Format(value), addr.Truncate(spender.Hex()), result.TxHash)), nil
}

// HandleGetPool reports the pool's price, tick, liquidity, and fee.
func (h *Handlers) HandleGetPool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := h.svc.PoolState(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read pool: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Pool state:\n")
	fmt.Fprintf(&sb, "  Price (token1/token0): %g\n", state.Price)
	fmt.Fprintf(&sb, "  Tick: %d\n", state.Tick)
	fmt.Fprintf(&sb, "  Liquidity: %s\n", state.Liquidity.String())
	fmt.Fprintf(&sb, "  Fee: %d bps\n", state.FeeBps)
	fmt.Fprintf(&sb, "  token0: %s\n", state.Token0.Hex())
	fmt.Fprintf(&sb, "  token1: %s\n", state.Token1.Hex())
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleSwapTokens quotes and executes a swap with slippage protection.
func (h *Handlers) HandleSwapTokens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var zeroForOne bool
	switch req.GetString("direction", "") {
	case "0to1":
		zeroForOne = true
	case "1to0":
		zeroForOne = false
	default:
		return mcp.NewToolResultError("direction must be '0to1' or '1to0'"), nil
	}

	amountIn, err := getAmount(req, "amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bps := h.cfg.SlippageBps
	if v, ok := getNumber(req, "slippage_bps"); ok {
		bps = int(v)
	}

	result, err := h.svc.Swap(ctx, chain.SwapParams{
		ZeroForOne:  zeroForOne,
		AmountIn:    amountIn,
		SlippageBps: bps,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Swap failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Swap submitted (%s)\n", req.GetString("direction", ""))
	fmt.Fprintf(&sb, "  In: %s\n", amount.Format(result.AmountIn))
	fmt.Fprintf(&sb, "  Quoted out: %s\n", amount.Format(result.QuotedOut))
	fmt.Fprintf(&sb, "  Minimum out (%d bps slippage): %s\n", bps, amount.Format(result.MinAmountOut))
	fmt.Fprintf(&sb, "Transaction: %s", result.TxHash)
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleAddLiquidity mints a position over a price range.
func (h *Handlers) HandleAddLiquidity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lower, ok := getNumber(req, "lower_price")
	if !ok {
		return mcp.NewToolResultError("lower_price is required"), nil
	}
	upper, ok := getNumber(req, "upper_price")
	if !ok {
		return mcp.NewToolResultError("upper_price is required"), nil
	}

	amount0, err := getAmount(req, "amount0")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount1, err := getAmount(req, "amount1")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.svc.AddLiquidity(ctx, chain.LiquidityParams{
		LowerPrice: lower,
		UpperPrice: upper,
		Amount0:    amount0,
		Amount1:    amount1,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Add liquidity failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Liquidity added over price range [%g, %g]\n"+
			"  token0: %s\n  token1: %s\nTransaction: %s",
		lower, upper, amount.Format(amount0), amount.Format(amount1), result.TxHash)), nil
}

// HandleRemoveLiquidity burns liquidity and reports the pro-rata share.
// Liquidity is a raw pool unit, not a token amount, so it is parsed as a
// plain integer with no decimal scaling.
func (h *Handlers) HandleRemoveLiquidity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	liquidity, err := parseLiquidity(req.GetString("liquidity", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.svc.RemoveLiquidity(ctx, liquidity)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Remove liquidity failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Liquidity burn submitted\n")
	fmt.Fprintf(&sb, "  Expected token0: %s\n", amount.Format(result.Expected0))
	fmt.Fprintf(&sb, "  Expected token1: %s\n", amount.Format(result.Expected1))
	fmt.Fprintf(&sb, "Transaction: %s", result.TxHash)
	return mcp.NewToolResultText(sb.String()), nil
}

// HandleGetFees reports fees accrued to a position.
func (h *Handlers) HandleGetFees(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := h.resolveAddress(req.GetString("address", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fees, err := h.svc.PendingFees(ctx, owner)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read fees: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Accrued fees for %s:\n  token0: %s\n  token1: %s",
		addr.Truncate(owner.Hex()), amount.Format(fees.Amount0), amount.Format(fees.Amount1))), nil
}

// HandleCollectFees withdraws accrued fees.
func (h *Handlers) HandleCollectFees(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.svc.CollectFees(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Collect failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Fee collection submitted\nTransaction: %s", result.TxHash)), nil
}

// HandleValidateAddress checksums an address.
func (h *Handlers) HandleValidateAddress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := req.GetString("address", "")
	if input == "" {
		return mcp.NewToolResultError("address is required"), nil
	}

	canonical, err := addr.Validate(input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Valid address\nChecksummed: %s\nDisplay: %s",
		canonical, addr.Truncate(canonical))), nil
}

// HandleEncodeMemo packs text into the 32-byte memo field.
func (h *Handlers) HandleEncodeMemo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded, err := memo.Encode(req.GetString("text", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(encoded), nil
}

// HandleConvertTick converts between prices and tick indices.
func (h *Handlers) HandleConvertTick(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	price, hasPrice := getNumber(req, "price")
	tick, hasTick := getNumber(req, "tick")

	switch {
	case hasPrice && hasTick:
		return mcp.NewToolResultError("give either 'price' or 'tick', not both"), nil
	case hasPrice:
		t, err := tickmath.PriceToTick(price)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Price %g -> tick %d", price, t)), nil
	case hasTick:
		p, err := tickmath.TickToPrice(int(tick))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Tick %d -> price %g", int(tick), p)), nil
	default:
		return mcp.NewToolResultError("give either 'price' or 'tick'"), nil
	}
}

// getNumber extracts a numeric argument; JSON numbers arrive as float64.
func getNumber(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// parseLiquidity parses a raw liquidity figure: the same integer unit
// the pool reports, with no decimal scaling.
func parseLiquidity(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", amount.ErrInvalidLiquidity, s)
	}
	return v, nil
}

// getAmount parses an amount argument. Strings go through the exact
// decimal parser; clients that send JSON numbers get the rounding float
// path instead.
func getAmount(req mcp.CallToolRequest, key string) (*big.Int, error) {
	switch v := req.GetArguments()[key].(type) {
	case string:
		return amount.Parse(v)
	case float64:
		return amount.ParseFloat(v)
	default:
		return nil, fmt.Errorf("%w: %q missing or not a string", amount.ErrInvalidAmount, key)
	}
}
