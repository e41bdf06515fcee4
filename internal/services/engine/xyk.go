// Package engine provides an in-memory constant-product query engine
// with hash-addressed state snapshots. Local runs and tests get real
// snapshot semantics without any external state backend.
package engine

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/xykswap/ammrpc/internal/entity"
)

// Pool describes one constant-product (x*y=k) pool.
type Pool struct {
	Address  common.Address
	AssetA   entity.AssetID
	AssetB   entity.AssetID
	ReserveA decimal.Decimal
	ReserveB decimal.Decimal
}

// XYK holds immutable pool-state snapshots addressed by hash. Reads
// never lock each other; the mutex only covers head advancement.
type XYK struct {
	mu        sync.RWMutex
	head      common.Hash
	sequence  uint64
	snapshots map[common.Hash][]Pool
}

// NewXYK creates an engine with no snapshots. Commit at least once
// before serving queries.
func NewXYK() *XYK {
	return &XYK{snapshots: make(map[common.Hash][]Pool)}
}

// Commit stores a copy of pools as a new snapshot, advances the head
// and returns the snapshot hash. Earlier snapshots stay queryable.
func (x *XYK) Commit(pools []Pool) common.Hash {
	snap := make([]Pool, len(pools))
	copy(snap, pools)

	x.mu.Lock()
	defer x.mu.Unlock()

	x.sequence++
	hash := snapshotHash(x.sequence, snap)
	x.snapshots[hash] = snap
	x.head = hash
	return hash
}

// BestSnapshot reports the most recently committed snapshot.
func (x *XYK) BestSnapshot() common.Hash {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.head
}

// SpotPrice values amount of assetA in assetB at the current reserve
// ratio, ignoring slippage.
func (x *XYK) SpotPrice(at common.Hash, assetA, assetB entity.AssetID, amount entity.Amount) (entity.BalanceInfo, error) {
	reserveIn, reserveOut, err := x.reserves(at, assetA, assetB)
	if err != nil {
		return entity.BalanceInfo{}, err
	}
	if reserveIn.IsZero() {
		return entity.BalanceInfo{}, errors.Errorf("pool holds no liquidity in asset %d", assetA)
	}
	out := amount.Decimal.Mul(reserveOut).Div(reserveIn)
	return entity.BalanceInfo{Asset: assetB, Amount: entity.NewAmount(out)}, nil
}

// SellPrice returns how much assetB swapping amount of assetA into
// the pool yields, slippage included.
func (x *XYK) SellPrice(at common.Hash, assetA, assetB entity.AssetID, amount entity.Amount) (entity.BalanceInfo, error) {
	reserveIn, reserveOut, err := x.reserves(at, assetA, assetB)
	if err != nil {
		return entity.BalanceInfo{}, err
	}
	denom := reserveIn.Add(amount.Decimal)
	if denom.IsZero() {
		return entity.BalanceInfo{}, errors.Errorf("pool holds no liquidity in asset %d", assetA)
	}
	out := reserveOut.Mul(amount.Decimal).Div(denom)
	return entity.BalanceInfo{Asset: assetB, Amount: entity.NewAmount(out)}, nil
}

// BuyPrice returns how much assetA buying amount of assetB out of the
// pool costs. Fails when the pool cannot cover the requested amount.
func (x *XYK) BuyPrice(at common.Hash, assetA, assetB entity.AssetID, amount entity.Amount) (entity.BalanceInfo, error) {
	reserveIn, reserveOut, err := x.reserves(at, assetA, assetB)
	if err != nil {
		return entity.BalanceInfo{}, err
	}
	if amount.Decimal.Cmp(reserveOut) >= 0 {
		return entity.BalanceInfo{}, errors.Errorf(
			"insufficient liquidity: pool holds %s of asset %d, %s requested",
			reserveOut, assetB, amount.Decimal)
	}
	in := reserveIn.Mul(amount.Decimal).Div(reserveOut.Sub(amount.Decimal))
	return entity.BalanceInfo{Asset: assetA, Amount: entity.NewAmount(in)}, nil
}

// PoolBalances returns the two balances of the pool at the given
// address, in pool declaration order.
func (x *XYK) PoolBalances(at common.Hash, pool common.Address) ([]entity.BalanceInfo, error) {
	pools, err := x.snapshot(at)
	if err != nil {
		return nil, err
	}
	for _, p := range pools {
		if p.Address == pool {
			return []entity.BalanceInfo{
				{Asset: p.AssetA, Amount: entity.NewAmount(p.ReserveA)},
				{Asset: p.AssetB, Amount: entity.NewAmount(p.ReserveB)},
			}, nil
		}
	}
	return nil, errors.Errorf("no pool at address %s", pool.Hex())
}

func (x *XYK) snapshot(at common.Hash) ([]Pool, error) {
	x.mu.RLock()
	pools, ok := x.snapshots[at]
	x.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown snapshot %s", at.Hex())
	}
	return pools, nil
}

func (x *XYK) reserves(at common.Hash, assetIn, assetOut entity.AssetID) (decimal.Decimal, decimal.Decimal, error) {
	pools, err := x.snapshot(at)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	for _, p := range pools {
		switch {
		case p.AssetA == assetIn && p.AssetB == assetOut:
			return p.ReserveA, p.ReserveB, nil
		case p.AssetA == assetOut && p.AssetB == assetIn:
			return p.ReserveB, p.ReserveA, nil
		}
	}
	return decimal.Decimal{}, decimal.Decimal{}, errors.Errorf("no pool trades assets %d/%d", assetIn, assetOut)
}

func snapshotHash(sequence uint64, pools []Pool) common.Hash {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, sequence)
	for _, p := range pools {
		buf.Write(p.Address.Bytes())
		_ = binary.Write(&buf, binary.BigEndian, uint32(p.AssetA))
		_ = binary.Write(&buf, binary.BigEndian, uint32(p.AssetB))
		buf.WriteString(p.ReserveA.String())
		buf.WriteByte(':')
		buf.WriteString(p.ReserveB.String())
		buf.WriteByte(';')
	}
	return crypto.Keccak256Hash(buf.Bytes())
}
