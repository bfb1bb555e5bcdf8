package mock

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lnswapd/swapd/pkg/swap/ethswap"
)

type escrowEntry struct {
	amount   *big.Int
	sender   common.Address
	hashlock [32]byte
	timelock int64
	claimed  bool
	refunded bool
	secret   [32]byte
}

// EscrowBackend is a shared in-memory escrow contract. Each party gets a
// view of it through NewEscrow, so two mocked wallets race over the same
// per-hashlock records like they would on chain.
type EscrowBackend struct {
	mu    sync.Mutex
	swaps map[[32]byte]*escrowEntry

	// Now is the chain clock, overridable to fast-forward past timelocks.
	Now func() int64
}

func NewEscrowBackend() *EscrowBackend {
	return &EscrowBackend{
		swaps: map[[32]byte]*escrowEntry{},
		Now:   func() int64 { return time.Now().Unix() },
	}
}

// Escrow is one party's handle on the shared backend. The Func fields
// override individual calls for error injection.
type Escrow struct {
	backend *EscrowBackend
	addr    common.Address

	FuncInitiate func(ctx context.Context, hashlock [32]byte, amount *big.Int, timelock int64) (string, error)
	FuncClaim    func(ctx context.Context, hashlock, secret [32]byte) (string, error)
	FuncRefund   func(ctx context.Context, hashlock [32]byte) (string, error)
}

func NewEscrow(backend *EscrowBackend, addr common.Address) *Escrow {
	return &Escrow{backend: backend, addr: addr}
}

func (escrow *Escrow) Address() common.Address {
	return escrow.addr
}

func (escrow *Escrow) Initiate(ctx context.Context, hashlock [32]byte, amount *big.Int, timelock int64) (string, error) {
	if escrow.FuncInitiate != nil {
		return escrow.FuncInitiate(ctx, hashlock, amount, timelock)
	}
	escrow.backend.mu.Lock()
	defer escrow.backend.mu.Unlock()

	if _, ok := escrow.backend.swaps[hashlock]; ok {
		return "", fmt.Errorf("swap already initiated for hashlock %x", hashlock)
	}
	escrow.backend.swaps[hashlock] = &escrowEntry{
		amount:   new(big.Int).Set(amount),
		sender:   escrow.addr,
		hashlock: hashlock,
		timelock: timelock,
	}
	return txHash("init", hashlock), nil
}

func (escrow *Escrow) Claim(ctx context.Context, hashlock, secret [32]byte) (string, error) {
	if escrow.FuncClaim != nil {
		return escrow.FuncClaim(ctx, hashlock, secret)
	}
	escrow.backend.mu.Lock()
	defer escrow.backend.mu.Unlock()

	entry, ok := escrow.backend.swaps[hashlock]
	switch {
	case !ok:
		return "", ethswap.ErrNoSwap
	case entry.claimed:
		return "", ethswap.ErrAlreadyClaimed
	case entry.refunded:
		return "", ethswap.ErrAlreadyRefunded
	}
	if sha256.Sum256(secret[:]) != hashlock {
		return "", fmt.Errorf("secret does not hash to hashlock %x", hashlock)
	}
	entry.claimed = true
	entry.secret = secret
	return txHash("claim", hashlock), nil
}

func (escrow *Escrow) Refund(ctx context.Context, hashlock [32]byte) (string, error) {
	if escrow.FuncRefund != nil {
		return escrow.FuncRefund(ctx, hashlock)
	}
	escrow.backend.mu.Lock()
	defer escrow.backend.mu.Unlock()

	entry, ok := escrow.backend.swaps[hashlock]
	switch {
	case !ok:
		return "", ethswap.ErrNoSwap
	case entry.claimed:
		return "", ethswap.ErrAlreadyClaimed
	case entry.refunded:
		return "", ethswap.ErrAlreadyRefunded
	case entry.sender != escrow.addr:
		return "", ethswap.ErrOnlySenderCanRefund
	case escrow.backend.Now() < entry.timelock:
		return "", ethswap.ErrTimelockNotPassed
	}
	entry.refunded = true
	return txHash("refund", hashlock), nil
}

func (escrow *Escrow) Status(ctx context.Context, hashlock [32]byte) (ethswap.State, error) {
	escrow.backend.mu.Lock()
	defer escrow.backend.mu.Unlock()

	entry, ok := escrow.backend.swaps[hashlock]
	if !ok {
		return ethswap.State{Amount: big.NewInt(0)}, nil
	}
	return ethswap.State{
		Amount:   new(big.Int).Set(entry.amount),
		Sender:   entry.sender,
		Hashlock: entry.hashlock,
		Timelock: big.NewInt(entry.timelock),
		Claimed:  entry.claimed,
		Refunded: entry.refunded,
	}, nil
}

func (escrow *Escrow) Secret(ctx context.Context, hashlock [32]byte) ([32]byte, error) {
	escrow.backend.mu.Lock()
	defer escrow.backend.mu.Unlock()

	entry, ok := escrow.backend.swaps[hashlock]
	if !ok || !entry.claimed {
		return [32]byte{}, fmt.Errorf("no claim log found for hashlock %x", hashlock)
	}
	return entry.secret, nil
}

func txHash(op string, hashlock [32]byte) string {
	sum := sha256.Sum256([]byte(op + string(hashlock[:])))
	return fmt.Sprintf("0x%x", sum)
}
