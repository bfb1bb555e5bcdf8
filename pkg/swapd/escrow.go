package swapd

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lnswapd/swapd/pkg/swap/ethswap"
)

// contractEscrow adapts the escrow wallet to the orchestrator's Escrow
// interface, rebuilding the per-hashlock swap record from chain state where
// an operation needs it.
type contractEscrow struct {
	wallet ethswap.Wallet
	opts   ethswap.Options
}

func NewContractEscrow(wallet ethswap.Wallet, opts ethswap.Options) Escrow {
	return &contractEscrow{wallet: wallet, opts: opts}
}

func (escrow *contractEscrow) Address() common.Address {
	return escrow.wallet.Address()
}

func (escrow *contractEscrow) Initiate(ctx context.Context, hashlock [32]byte, amount *big.Int, timelock int64) (string, error) {
	swap, err := ethswap.NewSwap(hashlock, amount, big.NewInt(timelock), escrow.opts)
	if err != nil {
		return "", err
	}
	return escrow.wallet.Initiate(ctx, swap)
}

func (escrow *contractEscrow) Claim(ctx context.Context, hashlock, secret [32]byte) (string, error) {
	swap, err := escrow.onchain(ctx, hashlock)
	if err != nil {
		return "", err
	}
	return escrow.wallet.Claim(ctx, swap, secret)
}

func (escrow *contractEscrow) Refund(ctx context.Context, hashlock [32]byte) (string, error) {
	swap, err := escrow.onchain(ctx, hashlock)
	if err != nil {
		return "", err
	}
	return escrow.wallet.Refund(ctx, swap)
}

func (escrow *contractEscrow) Status(ctx context.Context, hashlock [32]byte) (ethswap.State, error) {
	swap := ethswap.Swap{Hashlock: hashlock, Options: escrow.opts}
	return swap.State(ctx, escrow.wallet.Client())
}

func (escrow *contractEscrow) Secret(ctx context.Context, hashlock [32]byte) ([32]byte, error) {
	swap := ethswap.Swap{Hashlock: hashlock, Options: escrow.opts}
	return swap.Secret(ctx, escrow.wallet.Client())
}

// onchain rebuilds a swap record from the contract's view of the hashlock.
func (escrow *contractEscrow) onchain(ctx context.Context, hashlock [32]byte) (ethswap.Swap, error) {
	probe := ethswap.Swap{Hashlock: hashlock, Options: escrow.opts}
	state, err := probe.State(ctx, escrow.wallet.Client())
	if err != nil {
		return ethswap.Swap{}, err
	}
	if !state.Exists() {
		return ethswap.Swap{}, ethswap.ErrNoSwap
	}
	return ethswap.NewSwap(hashlock, state.Amount, state.Timelock, escrow.opts)
}
