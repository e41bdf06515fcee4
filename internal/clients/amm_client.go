package clients

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/xykswap/ammrpc/internal/entity"
	"github.com/xykswap/ammrpc/pkg/retrier"
)

// AMMClient is a typed client for the amm namespace, mirroring the
// server surface method for method. Pass at == nil to query the
// server's best snapshot.
type AMMClient struct {
	rpc *rpc.Client
}

// NewAMMClient wraps an already-connected RPC client.
func NewAMMClient(c *rpc.Client) *AMMClient {
	return &AMMClient{rpc: c}
}

// DialAMM connects to an amm RPC endpoint, retrying transient dial
// failures with backoff.
func DialAMM(ctx context.Context, url string) (*AMMClient, error) {
	r := retrier.New(retrier.WithMaxRetries(3))
	c, err := retrier.DoWithData(r, ctx, func(ctx context.Context) (*rpc.Client, error) {
		return rpc.DialContext(ctx, url)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}
	return &AMMClient{rpc: c}, nil
}

// Close tears down the underlying connection.
func (c *AMMClient) Close() {
	c.rpc.Close()
}

// GetSpotPrice calls amm_getSpotPrice.
func (c *AMMClient) GetSpotPrice(ctx context.Context, assetA, assetB entity.AssetID, amount entity.Amount, at *common.Hash) (entity.BalanceInfo, error) {
	var result entity.BalanceInfo
	err := c.rpc.CallContext(ctx, &result, "amm_getSpotPrice",
		assetA, assetB, entity.BalanceRequest{Amount: amount}, at)
	return result, err
}

// GetSellPrice calls amm_getSellPrice.
func (c *AMMClient) GetSellPrice(ctx context.Context, assetA, assetB entity.AssetID, amount entity.Amount, at *common.Hash) (entity.BalanceInfo, error) {
	var result entity.BalanceInfo
	err := c.rpc.CallContext(ctx, &result, "amm_getSellPrice",
		assetA, assetB, entity.BalanceRequest{Amount: amount}, at)
	return result, err
}

// GetBuyPrice calls amm_getBuyPrice.
func (c *AMMClient) GetBuyPrice(ctx context.Context, assetA, assetB entity.AssetID, amount entity.Amount, at *common.Hash) (entity.BalanceInfo, error) {
	var result entity.BalanceInfo
	err := c.rpc.CallContext(ctx, &result, "amm_getBuyPrice",
		assetA, assetB, entity.BalanceRequest{Amount: amount}, at)
	return result, err
}

// GetPoolBalances calls amm_getPoolBalances.
func (c *AMMClient) GetPoolBalances(ctx context.Context, pool common.Address, at *common.Hash) ([]entity.BalanceInfo, error) {
	var result []entity.BalanceInfo
	err := c.rpc.CallContext(ctx, &result, "amm_getPoolBalances", pool, at)
	return result, err
}
