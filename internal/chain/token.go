package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jmh889/dexflow/internal/memo"
)

// FaucetDrip requests testnet funds for an address from the faucet
// contract. The contract enforces its own per-address cooldown.
func (c *Client) FaucetDrip(ctx context.Context, to common.Address) (*TxResult, error) {
	data, err := c.faucetABI.Pack("drip", to)
	if err != nil {
		return nil, &CallError{Op: "drip", Err: err}
	}
	return c.sendTx(ctx, "drip", c.faucet, data)
}

// BalanceOf returns the token balance of an address in smallest units
func (c *Client) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	vals, err := c.read(ctx, token, c.tokenABI, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return toBigInt(vals, 0, "balanceOf")
}

// Transfer sends tokens to a recipient. value is in smallest units.
func (c *Client) Transfer(ctx context.Context, token, to common.Address, value *big.Int) (*TxResult, error) {
	if err := requirePositive(value); err != nil {
		return nil, err
	}
	data, err := c.tokenABI.Pack("transfer", to, value)
	if err != nil {
		return nil, &CallError{Op: "transfer", Err: err}
	}
	return c.sendTx(ctx, "transfer", token, data)
}

// TransferWithMemo sends tokens with a short note packed into the
// transfer's 32-byte memo field.
func (c *Client) TransferWithMemo(ctx context.Context, token, to common.Address, value *big.Int, note string) (*TxResult, error) {
	if err := requirePositive(value); err != nil {
		return nil, err
	}
	field, err := memo.EncodeBytes32(note)
	if err != nil {
		return nil, err
	}
	data, err := c.tokenABI.Pack("transferWithMemo", to, value, field)
	if err != nil {
		return nil, &CallError{Op: "transfer_with_memo", Err: err}
	}
	return c.sendTx(ctx, "transfer_with_memo", token, data)
}

// Approve lets spender move up to value of the caller's tokens
func (c *Client) Approve(ctx context.Context, token, spender common.Address, value *big.Int) (*TxResult, error) {
	if value == nil || value.Sign() < 0 {
		return nil, fmt.Errorf("%w: approval must be non-negative", ErrInvalidAmount)
	}
	data, err := c.tokenABI.Pack("approve", spender, value)
	if err != nil {
		return nil, &CallError{Op: "approve", Err: err}
	}
	return c.sendTx(ctx, "approve", token, data)
}

// Allowance returns how much spender may move on owner's behalf
func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	vals, err := c.read(ctx, token, c.tokenABI, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return toBigInt(vals, 0, "allowance")
}

func requirePositive(value *big.Int) error {
	if value == nil || value.Sign() <= 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	return nil
}

// toBigInt extracts output i of an unpacked contract return
func toBigInt(vals []any, i int, op string) (*big.Int, error) {
	if i >= len(vals) {
		return nil, &CallError{Op: op, Err: fmt.Errorf("missing output %d", i)}
	}
	v, ok := vals[i].(*big.Int)
	if !ok {
		return nil, &CallError{Op: op, Err: fmt.Errorf("unexpected output type %T", vals[i])}
	}
	return v, nil
}
