// Package chain handles all on-chain interactions for the dexflow CLI
// and MCP server: faucet drips, token transfers and approvals, AMM pool
// reads and writes, and fee collection. Every operation is a thin
// contract call with validation and formatting left to the callers.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// -----------------------------------------------------------------------------
// Errors - typed errors for programmatic handling
// -----------------------------------------------------------------------------

var (
	ErrInvalidPrivateKey = errors.New("chain: invalid private key")
	ErrInvalidAddress    = errors.New("chain: invalid address")
	ErrInvalidAmount     = errors.New("chain: invalid amount")
	ErrInvalidLiquidity  = errors.New("chain: invalid liquidity")
	ErrTransactionFailed = errors.New("chain: transaction failed")
	ErrTimeout           = errors.New("chain: operation timed out")
	ErrRPCConnection     = errors.New("chain: RPC connection failed")
)

// CallError wraps contract call failures with context
type CallError struct {
	Op     string // Operation that failed
	TxHash string // Transaction hash if available
	Err    error  // Underlying error
}

func (e *CallError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("chain: %s failed (tx: %s): %v", e.Op, e.TxHash, e.Err)
	}
	return fmt.Sprintf("chain: %s failed: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// -----------------------------------------------------------------------------
// Interfaces - for testability and flexibility
// -----------------------------------------------------------------------------

// EthClient abstracts go-ethereum client for testing
type EthClient interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

// Service is the full operation surface consumed by the CLI and the MCP
// tool handlers.
type Service interface {
	Address() string
	NativeBalance(ctx context.Context) (*big.Int, error)

	FaucetDrip(ctx context.Context, to common.Address) (*TxResult, error)

	BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error)
	Transfer(ctx context.Context, token, to common.Address, value *big.Int) (*TxResult, error)
	TransferWithMemo(ctx context.Context, token, to common.Address, value *big.Int, note string) (*TxResult, error)
	Approve(ctx context.Context, token, spender common.Address, value *big.Int) (*TxResult, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)

	PoolState(ctx context.Context) (*PoolState, error)
	Quote(ctx context.Context, zeroForOne bool, amountIn *big.Int) (*big.Int, error)
	Swap(ctx context.Context, p SwapParams) (*SwapResult, error)
	AddLiquidity(ctx context.Context, p LiquidityParams) (*TxResult, error)
	RemoveLiquidity(ctx context.Context, liquidity *big.Int) (*RemoveResult, error)
	PendingFees(ctx context.Context, owner common.Address) (*FeeAmounts, error)
	CollectFees(ctx context.Context) (*TxResult, error)

	WaitForConfirmation(ctx context.Context, txHash string, timeout time.Duration) (*TxResult, error)
	Close() error
}

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	// DefaultGasLimit when estimation fails
	DefaultGasLimit = uint64(300000)

	// DefaultConfirmationTimeout for waiting on transactions
	DefaultConfirmationTimeout = 30 * time.Second

	// ConfirmationPollInterval between receipt checks
	ConfirmationPollInterval = 2 * time.Second
)

// -----------------------------------------------------------------------------
// Types
// -----------------------------------------------------------------------------

// Config for creating a new chain client
type Config struct {
	RPCURL         string
	PrivateKey     string // Hex string, with or without 0x prefix
	ChainID        int64
	PoolContract   string
	RouterContract string
	FaucetContract string
}

// Option configures the client
type Option func(*Client)

// WithClient sets a custom Ethereum client (useful for testing)
func WithClient(client EthClient) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets the structured logger used for debug output
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// TxResult contains details of a submitted or mined transaction
type TxResult struct {
	TxHash      string
	From        string
	To          string
	Nonce       uint64
	BlockNumber uint64
	GasUsed     uint64
}

// Client executes contract reads and writes against the testnet
type Client struct {
	client     EthClient
	privateKey *ecdsa.PrivateKey
	address    common.Address
	chainID    *big.Int

	pool   common.Address
	router common.Address
	faucet common.Address

	tokenABI  abi.ABI
	poolABI   abi.ABI
	routerABI abi.ABI
	faucetABI abi.ABI

	log *slog.Logger
}

// Compile-time interface check
var _ Service = (*Client)(nil)

// New creates a new chain client
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: failed to derive public key", ErrInvalidPrivateKey)
	}

	c := &Client{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*publicKey),
		chainID:    big.NewInt(cfg.ChainID),
		pool:       common.HexToAddress(cfg.PoolContract),
		router:     common.HexToAddress(cfg.RouterContract),
		faucet:     common.HexToAddress(cfg.FaucetContract),
		log:        slog.Default(),
	}

	for name, dst := range map[string]*abi.ABI{
		"token":  &c.tokenABI,
		"pool":   &c.poolABI,
		"router": &c.routerABI,
		"faucet": &c.faucetABI,
	} {
		parsed, err := abi.JSON(strings.NewReader(abiJSON[name]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s ABI: %w", name, err)
		}
		*dst = parsed
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	// Connect to RPC if no client provided
	if c.client == nil {
		client, err := ethclient.Dial(cfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRPCConnection, err)
		}
		c.client = client
	}

	return c, nil
}

func validateConfig(cfg Config) error {
	if cfg.RPCURL == "" {
		return fmt.Errorf("%w: RPC URL required", ErrRPCConnection)
	}
	if cfg.PrivateKey == "" {
		return fmt.Errorf("%w: private key required", ErrInvalidPrivateKey)
	}
	key := strings.TrimPrefix(cfg.PrivateKey, "0x")
	if len(key) != 64 {
		return fmt.Errorf("%w: must be 64 hex characters", ErrInvalidPrivateKey)
	}
	if cfg.ChainID == 0 {
		return fmt.Errorf("chain ID required")
	}
	for name, addr := range map[string]string{
		"pool":   cfg.PoolContract,
		"router": cfg.RouterContract,
		"faucet": cfg.FaucetContract,
	} {
		if addr == "" {
			return fmt.Errorf("%w: %s contract address required", ErrInvalidAddress, name)
		}
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%w: %s contract %q", ErrInvalidAddress, name, addr)
		}
	}
	return nil
}

// Address returns the signing account's address
func (c *Client) Address() string {
	return c.address.Hex()
}

// NativeBalance returns the account's native token balance in wei
func (c *Client) NativeBalance(ctx context.Context) (*big.Int, error) {
	bal, err := c.client.BalanceAt(ctx, c.address, nil)
	if err != nil {
		return nil, &CallError{Op: "native_balance", Err: err}
	}
	return bal, nil
}

// read packs a contract call, executes it, and unpacks the outputs
func (c *Client) read(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, &CallError{Op: method, Err: err}
	}
	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, &CallError{Op: method, Err: err}
	}
	vals, err := contract.Unpack(method, out)
	if err != nil {
		return nil, &CallError{Op: method, Err: err}
	}
	return vals, nil
}

// sendTx signs and submits calldata to a contract
func (c *Client) sendTx(ctx context.Context, op string, to common.Address, data []byte) (*TxResult, error) {
	nonce, err := c.client.PendingNonceAt(ctx, c.address)
	if err != nil {
		return nil, &CallError{Op: op, Err: err}
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &CallError{Op: op, Err: err}
	}

	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  c.address,
		To:    &to,
		Value: big.NewInt(0),
		Data:  data,
	})
	if err != nil {
		// Use default if estimation fails
		gasLimit = DefaultGasLimit
	}

	tx := types.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.privateKey)
	if err != nil {
		return nil, &CallError{Op: op, Err: err}
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, &CallError{Op: op, TxHash: signedTx.Hash().Hex(), Err: err}
	}

	c.log.Debug("transaction sent",
		"op", op,
		"tx", signedTx.Hash().Hex(),
		"to", to.Hex(),
		"nonce", nonce,
	)

	return &TxResult{
		TxHash: signedTx.Hash().Hex(),
		From:   c.address.Hex(),
		To:     to.Hex(),
		Nonce:  nonce,
	}, nil
}

// WaitForConfirmation waits for a transaction to be mined
func (c *Client) WaitForConfirmation(ctx context.Context, txHash string, timeout time.Duration) (*TxResult, error) {
	hash := common.HexToHash(txHash)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(ConfirmationPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status == 0 {
				return nil, &CallError{
					Op:     "confirm",
					TxHash: txHash,
					Err:    ErrTransactionFailed,
				}
			}
			return &TxResult{
				TxHash:      txHash,
				BlockNumber: receipt.BlockNumber.Uint64(),
				GasUsed:     receipt.GasUsed,
			}, nil
		}

		// Not yet mined, wait for the next poll.
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: waiting for tx %s", ErrTimeout, txHash)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
