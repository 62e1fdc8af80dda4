package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jmh889/dexflow/internal/amount"
	"github.com/jmh889/dexflow/internal/tickmath"
)

// PoolState is a snapshot of the pool's price and liquidity
type PoolState struct {
	SqrtPriceX96 *big.Int
	Tick         int
	Price        float64 // token1 per token0, from the current tick
	Liquidity    *big.Int
	FeeBps       int
	Token0       common.Address
	Token1       common.Address
}

// SwapParams describes a swap request. MinAmountOut is derived from the
// router's quote and SlippageBps before submission.
type SwapParams struct {
	ZeroForOne  bool
	AmountIn    *big.Int
	SlippageBps int
}

// SwapResult records the submitted swap and its slippage bound
type SwapResult struct {
	TxResult
	AmountIn     *big.Int
	QuotedOut    *big.Int
	MinAmountOut *big.Int
}

// LiquidityParams describes a liquidity provision over a price range
type LiquidityParams struct {
	LowerPrice float64
	UpperPrice float64
	Amount0    *big.Int
	Amount1    *big.Int
}

// RemoveResult records a liquidity burn and the pro-rata amounts the
// position is entitled to
type RemoveResult struct {
	TxResult
	Liquidity *big.Int
	Expected0 *big.Int
	Expected1 *big.Int
}

// FeeAmounts holds accrued fees per pool token
type FeeAmounts struct {
	Amount0 *big.Int
	Amount1 *big.Int
}

// PoolState reads slot0, liquidity, fee, and token addresses from the pool
func (c *Client) PoolState(ctx context.Context) (*PoolState, error) {
	slot0, err := c.read(ctx, c.pool, c.poolABI, "slot0")
	if err != nil {
		return nil, err
	}
	sqrtPrice, err := toBigInt(slot0, 0, "slot0")
	if err != nil {
		return nil, err
	}
	tickRaw, err := toBigInt(slot0, 1, "slot0")
	if err != nil {
		return nil, err
	}
	tick := int(tickRaw.Int64())

	price, err := tickmath.TickToPrice(tick)
	if err != nil {
		return nil, &CallError{Op: "slot0", Err: err}
	}

	liqVals, err := c.read(ctx, c.pool, c.poolABI, "liquidity")
	if err != nil {
		return nil, err
	}
	liquidity, err := toBigInt(liqVals, 0, "liquidity")
	if err != nil {
		return nil, err
	}

	feeVals, err := c.read(ctx, c.pool, c.poolABI, "fee")
	if err != nil {
		return nil, err
	}
	fee, err := toBigInt(feeVals, 0, "fee")
	if err != nil {
		return nil, err
	}

	token0, err := c.readAddress(ctx, "token0")
	if err != nil {
		return nil, err
	}
	token1, err := c.readAddress(ctx, "token1")
	if err != nil {
		return nil, err
	}

	return &PoolState{
		SqrtPriceX96: sqrtPrice,
		Tick:         tick,
		Price:        price,
		Liquidity:    liquidity,
		FeeBps:       int(fee.Int64()),
		Token0:       token0,
		Token1:       token1,
	}, nil
}

func (c *Client) readAddress(ctx context.Context, method string) (common.Address, error) {
	vals, err := c.read(ctx, c.pool, c.poolABI, method)
	if err != nil {
		return common.Address{}, err
	}
	if len(vals) == 0 {
		return common.Address{}, &CallError{Op: method, Err: fmt.Errorf("empty output")}
	}
	addr, ok := vals[0].(common.Address)
	if !ok {
		return common.Address{}, &CallError{Op: method, Err: fmt.Errorf("unexpected output type %T", vals[0])}
	}
	return addr, nil
}

// Quote asks the router how much a swap would return at the current price
func (c *Client) Quote(ctx context.Context, zeroForOne bool, amountIn *big.Int) (*big.Int, error) {
	if err := requirePositive(amountIn); err != nil {
		return nil, err
	}
	vals, err := c.read(ctx, c.router, c.routerABI, "quote", zeroForOne, amountIn)
	if err != nil {
		return nil, err
	}
	return toBigInt(vals, 0, "quote")
}

// Swap quotes the trade, applies the slippage tolerance to derive the
// minimum acceptable output, and submits the swap.
func (c *Client) Swap(ctx context.Context, p SwapParams) (*SwapResult, error) {
	if err := requirePositive(p.AmountIn); err != nil {
		return nil, err
	}

	quoted, err := c.Quote(ctx, p.ZeroForOne, p.AmountIn)
	if err != nil {
		return nil, err
	}

	minOut, err := amount.ApplySlippage(quoted, p.SlippageBps)
	if err != nil {
		return nil, err
	}

	data, err := c.routerABI.Pack("swap", p.ZeroForOne, p.AmountIn, minOut)
	if err != nil {
		return nil, &CallError{Op: "swap", Err: err}
	}

	tx, err := c.sendTx(ctx, "swap", c.router, data)
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		TxResult:     *tx,
		AmountIn:     p.AmountIn,
		QuotedOut:    quoted,
		MinAmountOut: minOut,
	}, nil
}

// AddLiquidity converts the price range to ticks and mints a position
func (c *Client) AddLiquidity(ctx context.Context, p LiquidityParams) (*TxResult, error) {
	if p.Amount0 == nil || p.Amount1 == nil || p.Amount0.Sign() < 0 || p.Amount1.Sign() < 0 {
		return nil, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidAmount)
	}
	if p.Amount0.Sign() == 0 && p.Amount1.Sign() == 0 {
		return nil, fmt.Errorf("%w: at least one amount must be positive", ErrInvalidAmount)
	}

	tickLower, err := tickmath.PriceToTick(p.LowerPrice)
	if err != nil {
		return nil, err
	}
	tickUpper, err := tickmath.PriceToTick(p.UpperPrice)
	if err != nil {
		return nil, err
	}
	if tickLower >= tickUpper {
		return nil, fmt.Errorf("%w: lower price must be below upper price", tickmath.ErrInvalidPrice)
	}

	data, err := c.routerABI.Pack("mint",
		big.NewInt(int64(tickLower)),
		big.NewInt(int64(tickUpper)),
		p.Amount0,
		p.Amount1,
	)
	if err != nil {
		return nil, &CallError{Op: "mint", Err: err}
	}

	return c.sendTx(ctx, "mint", c.router, data)
}

// RemoveLiquidity burns position liquidity. The expected token amounts
// are the position's liquidity-weighted share of the pool balances.
func (c *Client) RemoveLiquidity(ctx context.Context, liquidity *big.Int) (*RemoveResult, error) {
	if liquidity == nil || liquidity.Sign() <= 0 {
		return nil, fmt.Errorf("%w: liquidity must be positive", ErrInvalidLiquidity)
	}

	posVals, err := c.read(ctx, c.pool, c.poolABI, "positions", c.address)
	if err != nil {
		return nil, err
	}
	position, err := toBigInt(posVals, 0, "positions")
	if err != nil {
		return nil, err
	}
	if liquidity.Cmp(position) > 0 {
		return nil, fmt.Errorf("%w: position holds %s, burn of %s requested",
			ErrInvalidLiquidity, position, liquidity)
	}

	totalVals, err := c.read(ctx, c.pool, c.poolABI, "liquidity")
	if err != nil {
		return nil, err
	}
	total, err := toBigInt(totalVals, 0, "liquidity")
	if err != nil {
		return nil, err
	}

	token0, err := c.readAddress(ctx, "token0")
	if err != nil {
		return nil, err
	}
	token1, err := c.readAddress(ctx, "token1")
	if err != nil {
		return nil, err
	}

	balance0, err := c.BalanceOf(ctx, token0, c.pool)
	if err != nil {
		return nil, err
	}
	balance1, err := c.BalanceOf(ctx, token1, c.pool)
	if err != nil {
		return nil, err
	}

	expected0, err := amount.ProRataShare(balance0, liquidity, total)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLiquidity, err)
	}
	expected1, err := amount.ProRataShare(balance1, liquidity, total)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLiquidity, err)
	}

	data, err := c.routerABI.Pack("burn", liquidity)
	if err != nil {
		return nil, &CallError{Op: "burn", Err: err}
	}

	tx, err := c.sendTx(ctx, "burn", c.router, data)
	if err != nil {
		return nil, err
	}

	return &RemoveResult{
		TxResult:  *tx,
		Liquidity: liquidity,
		Expected0: expected0,
		Expected1: expected1,
	}, nil
}

// PendingFees reads the fees accrued to a position
func (c *Client) PendingFees(ctx context.Context, owner common.Address) (*FeeAmounts, error) {
	vals, err := c.read(ctx, c.pool, c.poolABI, "pendingFees", owner)
	if err != nil {
		return nil, err
	}
	amount0, err := toBigInt(vals, 0, "pendingFees")
	if err != nil {
		return nil, err
	}
	amount1, err := toBigInt(vals, 1, "pendingFees")
	if err != nil {
		return nil, err
	}
	return &FeeAmounts{Amount0: amount0, Amount1: amount1}, nil
}

// CollectFees withdraws all accrued fees to the caller
func (c *Client) CollectFees(ctx context.Context) (*TxResult, error) {
	data, err := c.routerABI.Pack("collect")
	if err != nil {
		return nil, &CallError{Op: "collect", Err: err}
	}
	return c.sendTx(ctx, "collect", c.router, data)
}
