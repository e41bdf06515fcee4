// Package rpcapi exposes read-only amm pricing queries over JSON-RPC.
// It resolves which state snapshot a call runs against, dispatches to
// the query engine, and flattens engine failures into one stable
// caller-facing error shape. All business logic lives in the engine.
package rpcapi

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/xykswap/ammrpc/internal/entity"
)

// QueryEngine evaluates pricing queries against an immutable state
// snapshot. Implementations must be safe for unsynchronized
// concurrent reads.
type QueryEngine interface {
	SpotPrice(at common.Hash, assetA, assetB entity.AssetID, amount entity.Amount) (entity.BalanceInfo, error)
	SellPrice(at common.Hash, assetA, assetB entity.AssetID, amount entity.Amount) (entity.BalanceInfo, error)
	BuyPrice(at common.Hash, assetA, assetB entity.AssetID, amount entity.Amount) (entity.BalanceInfo, error)
	PoolBalances(at common.Hash, pool common.Address) ([]entity.BalanceInfo, error)
}

// HeadInfo reports the current best-known snapshot.
type HeadInfo interface {
	BestSnapshot() common.Hash
}

// API implements the amm_* RPC methods. Register it under the "amm"
// namespace; method names map to amm_getSpotPrice and friends.
type API struct {
	engine QueryEngine
	head   HeadInfo
	logger *zap.Logger
}

// NewAPI creates the amm API around an engine and head tracker.
func NewAPI(engine QueryEngine, head HeadInfo, logger *zap.Logger) *API {
	return &API{engine: engine, head: head, logger: logger}
}

// resolveSnapshot picks the snapshot a call runs against. An explicit
// hash passes through unvalidated; a bad one surfaces later as an
// engine failure. Absent means the best snapshot at call time, looked
// up fresh on every call.
func (a *API) resolveSnapshot(at *common.Hash) common.Hash {
	if at != nil {
		return *at
	}
	return a.head.BestSnapshot()
}

// GetSpotPrice returns the spot price of assetA in assetB for the
// given amount.
func (a *API) GetSpotPrice(assetA, assetB entity.AssetID, req entity.BalanceRequest, at *common.Hash) (entity.BalanceInfo, error) {
	snapshot := a.resolveSnapshot(at)
	info, err := a.engine.SpotPrice(snapshot, assetA, assetB, req.Amount)
	if err != nil {
		a.logFailure("getSpotPrice", snapshot, err)
		return entity.BalanceInfo{}, newRuntimeError(msgSpotPrice, err)
	}
	return info, nil
}

// GetSellPrice returns how much assetB selling the given amount of
// assetA yields.
func (a *API) GetSellPrice(assetA, assetB entity.AssetID, req entity.BalanceRequest, at *common.Hash) (entity.BalanceInfo, error) {
	snapshot := a.resolveSnapshot(at)
	info, err := a.engine.SellPrice(snapshot, assetA, assetB, req.Amount)
	if err != nil {
		a.logFailure("getSellPrice", snapshot, err)
		return entity.BalanceInfo{}, newRuntimeError(msgSellPrice, err)
	}
	return info, nil
}

// GetBuyPrice returns how much assetA buying the given amount of
// assetB costs.
func (a *API) GetBuyPrice(assetA, assetB entity.AssetID, req entity.BalanceRequest, at *common.Hash) (entity.BalanceInfo, error) {
	snapshot := a.resolveSnapshot(at)
	info, err := a.engine.BuyPrice(snapshot, assetA, assetB, req.Amount)
	if err != nil {
		a.logFailure("getBuyPrice", snapshot, err)
		return entity.BalanceInfo{}, newRuntimeError(msgBuyPrice, err)
	}
	return info, nil
}

// GetPoolBalances returns the balances held by a pool, in engine
// order. The result is an explicit list, empty rather than null.
func (a *API) GetPoolBalances(pool common.Address, at *common.Hash) ([]entity.BalanceInfo, error) {
	snapshot := a.resolveSnapshot(at)
	balances, err := a.engine.PoolBalances(snapshot, pool)
	if err != nil {
		a.logFailure("getPoolBalances", snapshot, err)
		return nil, newRuntimeError(msgPoolBalances, err)
	}
	if balances == nil {
		balances = []entity.BalanceInfo{}
	}
	return balances, nil
}

func (a *API) logFailure(method string, snapshot common.Hash, err error) {
	a.logger.Debug("engine query failed",
		zap.String("method", method),
		zap.String("snapshot", snapshot.Hex()),
		zap.Error(err))
}
