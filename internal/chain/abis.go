package chain

// Minimal ABIs for the testnet contracts. Only the functions the client
// actually calls are declared.
var abiJSON = map[string]string{
	"token": `[
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"memo","type":"bytes32"}],"name":"transferWithMemo","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"}
]`,

	"pool": `[
	{"constant":true,"inputs":[],"name":"slot0","outputs":[{"name":"sqrtPriceX96","type":"uint160"},{"name":"tick","type":"int24"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"liquidity","outputs":[{"name":"","type":"uint128"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"fee","outputs":[{"name":"","type":"uint24"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"token0","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"token1","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"positions","outputs":[{"name":"liquidity","type":"uint128"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"pendingFees","outputs":[{"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}],"type":"function"}
]`,

	"router": `[
	{"constant":true,"inputs":[{"name":"zeroForOne","type":"bool"},{"name":"amountIn","type":"uint256"}],"name":"quote","outputs":[{"name":"amountOut","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"zeroForOne","type":"bool"},{"name":"amountIn","type":"uint256"},{"name":"minAmountOut","type":"uint256"}],"name":"swap","outputs":[{"name":"amountOut","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"tickLower","type":"int24"},{"name":"tickUpper","type":"int24"},{"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}],"name":"mint","outputs":[{"name":"liquidity","type":"uint128"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"liquidity","type":"uint128"}],"name":"burn","outputs":[{"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[],"name":"collect","outputs":[{"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}],"type":"function"}
]`,

	"faucet": `[
	{"constant":false,"inputs":[{"name":"to","type":"address"}],"name":"drip","outputs":[],"type":"function"}
]`,
}
