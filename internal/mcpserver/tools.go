package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the dexflow MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolFaucetRequest = mcp.NewTool("faucet_request",
	mcp.WithDescription(
		"Request testnet tokens from the faucet. "+
			"Funds your own wallet unless another address is given. "+
			"The faucet enforces a per-address cooldown on chain."),
	mcp.WithString("address",
		mcp.Description("Recipient address (defaults to your own wallet)")),
)

var ToolGetBalance = mcp.NewTool("get_balance",
	mcp.WithDescription(
		"Check token and native balances for an address. "+
			"Shows both pool tokens plus the native gas balance."),
	mcp.WithString("address",
		mcp.Description("Address to check (defaults to your own wallet)")),
)

var ToolTransferToken = mcp.NewTool("transfer_token",
	mcp.WithDescription(
		"Send tokens to another address. Amounts are decimal strings "+
			"(e.g. '1.5'). An optional memo (up to 31 bytes) is recorded "+
			"on chain with the transfer."),
	mcp.WithString("recipient",
		mcp.Required(),
		mcp.Description("Recipient address (e.g. '0x1234...')")),
	mcp.WithString("amount",
		mcp.Required(),
		mcp.Description("Amount to send as a decimal string (e.g. '1.5')")),
	mcp.WithString("token",
		mcp.Description("Which token: 'token0' (default), 'token1', or a contract address")),
	mcp.WithString("memo",
		mcp.Description("Optional note recorded with the transfer, up to 31 bytes")),
)

var ToolApproveToken = mcp.NewTool("approve_token",
	mcp.WithDescription(
		"Approve a spender (usually the router) to move your tokens. "+
			"Approving '0' revokes a previous approval."),
	mcp.WithString("spender",
		mcp.Required(),
		mcp.Description("Spender contract address")),
	mcp.WithString("amount",
		mcp.Required(),
		mcp.Description("Allowance as a decimal string (e.g. '100')")),
	mcp.WithString("token",
		mcp.Description("Which token: 'token0' (default), 'token1', or a contract address")),
)

var ToolGetPool = mcp.NewTool("get_pool",
	mcp.WithDescription(
		"Get the AMM pool state: current price, tick, total liquidity, "+
			"and the pool fee in basis points."),
)

var ToolSwapTokens = mcp.NewTool("swap_tokens",
	mcp.WithDescription(
		"Swap tokens through the pool. Quotes the trade first and applies "+
			"your slippage tolerance to set the minimum acceptable output; "+
			"the swap reverts on chain if the price moves beyond it."),
	mcp.WithString("direction",
		mcp.Required(),
		mcp.Description("Swap direction: '0to1' sells token0 for token1, '1to0' the reverse"),
		mcp.Enum("0to1", "1to0")),
	mcp.WithString("amount",
		mcp.Required(),
		mcp.Description("Input amount as a decimal string (e.g. '2.5')")),
	mcp.WithNumber("slippage_bps",
		mcp.Description("Slippage tolerance in basis points (default from server config, e.g. 50 = 0.5%)")),
)

var ToolAddLiquidity = mcp.NewTool("add_liquidity",
	mcp.WithDescription(
		"Provide liquidity to the pool over a price range. Prices are "+
			"token1-per-token0 and are snapped to the pool's tick grid."),
	mcp.WithNumber("lower_price",
		mcp.Required(),
		mcp.Description("Lower bound of the price range")),
	mcp.WithNumber("upper_price",
		mcp.Required(),
		mcp.Description("Upper bound of the price range")),
	mcp.WithString("amount0",
		mcp.Required(),
		mcp.Description("token0 amount as a decimal string")),
	mcp.WithString("amount1",
		mcp.Required(),
		mcp.Description("token1 amount as a decimal string")),
)

var ToolRemoveLiquidity = mcp.NewTool("remove_liquidity",
	mcp.WithDescription(
		"Burn liquidity from your position. Reports the pro-rata token "+
			"amounts the burned share is entitled to."),
	mcp.WithString("liquidity",
		mcp.Required(),
		mcp.Description("Liquidity units to burn, as an integer string")),
)

var ToolGetFees = mcp.NewTool("get_fees",
	mcp.WithDescription(
		"Show the trading fees accrued to a liquidity position."),
	mcp.WithString("address",
		mcp.Description("Position owner (defaults to your own wallet)")),
)

var ToolCollectFees = mcp.NewTool("collect_fees",
	mcp.WithDescription(
		"Withdraw all trading fees accrued to your liquidity position."),
)

var ToolValidateAddress = mcp.NewTool("validate_address",
	mcp.WithDescription(
		"Check whether a string is a valid 20-byte hex address and return "+
			"its canonical checksummed form."),
	mcp.WithString("address",
		mcp.Required(),
		mcp.Description("Address to validate")),
)

var ToolEncodeMemo = mcp.NewTool("encode_memo",
	mcp.WithDescription(
		"Encode a short note (up to 31 bytes of UTF-8) into the 32-byte "+
			"on-chain memo field, returned as a hex string."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Memo text")),
)

var ToolConvertTick = mcp.NewTool("convert_tick",
	mcp.WithDescription(
		"Convert between a price and its tick index on the pool's "+
			"geometric price grid (price = 1.0001^tick). "+
			"Give either 'price' or 'tick'."),
	mcp.WithNumber("price",
		mcp.Description("Price to convert to the nearest tick")),
	mcp.WithNumber("tick",
		mcp.Description("Tick index to convert to a price")),
)
