package ethswap

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/lnswapd/swapd/pkg/swap/ethswap/bindings"
)

// Revert reasons surfaced by the escrow contract. The wallet checks these
// conditions before sending a transaction so callers get the same error the
// contract would revert with, without burning gas.
var (
	ErrNoSwap              = errors.New("Swap: No swap for this hashlock")
	ErrTimelockNotPassed   = errors.New("Swap: Timelock has not yet passed")
	ErrOnlySenderCanRefund = errors.New("Swap: Only sender can refund")
	ErrAlreadyRefunded     = errors.New("Swap: Already refunded")
	ErrAlreadyClaimed      = errors.New("Swap: Already claimed")
)

// maxBlockSpan is the widest eth_getLogs range we request at once.
const maxBlockSpan = 500

// Swap identifies one hashlock escrow on the contract. Amount is in wei and
// Timelock is an absolute unix timestamp after which the sender may refund.
type Swap struct {
	Hashlock [32]byte
	Amount   *big.Int
	Timelock *big.Int

	Options Options
}

func NewSwap(hashlock [32]byte, amount, timelock *big.Int, opts Options) (Swap, error) {
	if err := opts.Validate(); err != nil {
		return Swap{}, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return Swap{}, fmt.Errorf("invalid swap amount: %v", amount)
	}
	if timelock == nil || timelock.Sign() <= 0 {
		return Swap{}, fmt.Errorf("invalid swap timelock: %v", timelock)
	}
	return Swap{
		Hashlock: hashlock,
		Amount:   amount,
		Timelock: timelock,
		Options:  opts,
	}, nil
}

// State is a point-in-time read of the on-chain swaps mapping.
type State struct {
	Amount   *big.Int
	Sender   common.Address
	Hashlock [32]byte
	Timelock *big.Int
	Claimed  bool
	Refunded bool
}

// Exists reports whether the contract knows this hashlock.
func (state State) Exists() bool {
	return state.Amount != nil && state.Amount.Sign() > 0
}

// State reads the escrow entry for the swap's hashlock.
func (swap *Swap) State(ctx context.Context, client *ethclient.Client) (State, error) {
	contract, err := bindings.NewAtomicSwapCaller(swap.Options.SwapAddr, client)
	if err != nil {
		return State{}, err
	}
	entry, err := contract.Swaps(&bind.CallOpts{Context: ctx}, swap.Hashlock)
	if err != nil {
		return State{}, fmt.Errorf("failed to read swap state: %w", err)
	}
	return State(entry), nil
}

// Initiated reports whether the swap has been funded on chain.
func (swap *Swap) Initiated(ctx context.Context, client *ethclient.Client) (bool, error) {
	state, err := swap.State(ctx, client)
	if err != nil {
		return false, err
	}
	return state.Exists(), nil
}

// Claimed reports whether the swap has been claimed, and if so returns the
// secret recovered from the SwapClaimed event log.
func (swap *Swap) Claimed(ctx context.Context, client *ethclient.Client) (bool, [32]byte, error) {
	state, err := swap.State(ctx, client)
	if err != nil {
		return false, [32]byte{}, err
	}
	if !state.Claimed {
		return false, [32]byte{}, nil
	}
	secret, err := swap.Secret(ctx, client)
	if err != nil {
		return true, [32]byte{}, err
	}
	return true, secret, nil
}

// Refunded reports whether the sender has taken the funds back.
func (swap *Swap) Refunded(ctx context.Context, client *ethclient.Client) (bool, error) {
	state, err := swap.State(ctx, client)
	if err != nil {
		return false, err
	}
	return state.Refunded, nil
}

// Expired reports whether the refund timelock has passed, judged against the
// latest block timestamp rather than local clock.
func (swap *Swap) Expired(ctx context.Context, client *ethclient.Client) (bool, error) {
	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to get latest block header: %w", err)
	}
	return new(big.Int).SetUint64(header.Time).Cmp(swap.Timelock) >= 0, nil
}

// Secret scans SwapClaimed logs for this hashlock and returns the revealed
// preimage. The scan walks backwards from the chain head in fixed windows so
// a recent claim is found quickly.
func (swap *Swap) Secret(ctx context.Context, client *ethclient.Client) ([32]byte, error) {
	filterer, err := bindings.NewAtomicSwapFilterer(swap.Options.SwapAddr, client)
	if err != nil {
		return [32]byte{}, err
	}
	head, err := client.BlockNumber(ctx)
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to get block number: %w", err)
	}

	for end := head; ; {
		start := uint64(0)
		if end > maxBlockSpan {
			start = end - maxBlockSpan
		}
		iter, err := filterer.FilterSwapClaimed(&bind.FilterOpts{
			Start:   start,
			End:     &end,
			Context: ctx,
		}, [][32]byte{swap.Hashlock}, nil)
		if err != nil {
			return [32]byte{}, fmt.Errorf("failed to filter claim logs: %w", err)
		}
		for iter.Next() {
			secret := iter.Event.Secret
			iter.Close()
			if sha256.Sum256(secret[:]) != swap.Hashlock {
				return [32]byte{}, fmt.Errorf("claim log secret does not match hashlock")
			}
			return secret, nil
		}
		if err := iter.Error(); err != nil {
			return [32]byte{}, err
		}
		iter.Close()

		if start == 0 {
			return [32]byte{}, fmt.Errorf("no claim log found for hashlock %x", swap.Hashlock)
		}
		end = start - 1
	}
}
