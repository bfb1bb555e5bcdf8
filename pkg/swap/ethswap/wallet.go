package ethswap

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/lnswapd/swapd/pkg/swap/ethswap/bindings"
)

// Wallet signs and submits escrow transactions for one key. All mutators
// block until the transaction is mined.
type Wallet interface {
	Address() common.Address
	Client() *ethclient.Client
	Balance(ctx context.Context, pending bool) (*big.Int, error)

	Initiate(ctx context.Context, swap Swap) (string, error)
	Claim(ctx context.Context, swap Swap, secret [32]byte) (string, error)
	Refund(ctx context.Context, swap Swap) (string, error)
}

type wallet struct {
	mu *sync.Mutex

	key     *ecdsa.PrivateKey
	addr    common.Address
	client  *ethclient.Client
	chainID *big.Int
	nonce   uint64

	contract *bindings.AtomicSwap
}

func NewWallet(key *ecdsa.PrivateKey, client *ethclient.Client, opts Options) (Wallet, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	contract, err := bindings.NewAtomicSwap(opts.SwapAddr, client)
	if err != nil {
		return nil, err
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	nonce, err := client.PendingNonceAt(context.Background(), addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	return &wallet{
		mu:       new(sync.Mutex),
		key:      key,
		addr:     addr,
		client:   client,
		chainID:  opts.ChainID,
		nonce:    nonce,
		contract: contract,
	}, nil
}

func (wallet *wallet) Address() common.Address {
	return wallet.addr
}

func (wallet *wallet) Client() *ethclient.Client {
	return wallet.client
}

func (wallet *wallet) Balance(ctx context.Context, pending bool) (*big.Int, error) {
	if pending {
		return wallet.client.PendingBalanceAt(ctx, wallet.addr)
	}
	return wallet.client.BalanceAt(ctx, wallet.addr, nil)
}

func (wallet *wallet) Initiate(ctx context.Context, swap Swap) (string, error) {
	state, err := swap.State(ctx, wallet.client)
	if err != nil {
		return "", err
	}
	if state.Exists() {
		return "", fmt.Errorf("swap already initiated for hashlock %x", swap.Hashlock)
	}

	wallet.mu.Lock()
	defer wallet.mu.Unlock()

	tx, err := wallet.transact(ctx, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		opts.Value = swap.Amount
		return wallet.contract.InitiateSwap(opts, swap.Hashlock, swap.Timelock)
	})
	if err != nil {
		return "", fmt.Errorf("failed to initiate swap: %w", err)
	}
	receipt, err := bind.WaitMined(ctx, wallet.client, tx)
	if err != nil {
		return "", err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return "", fmt.Errorf("initiate tx reverted: %v", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

func (wallet *wallet) Claim(ctx context.Context, swap Swap, secret [32]byte) (string, error) {
	if sha256.Sum256(secret[:]) != swap.Hashlock {
		return "", fmt.Errorf("secret does not hash to hashlock %x", swap.Hashlock)
	}
	state, err := swap.State(ctx, wallet.client)
	if err != nil {
		return "", err
	}
	switch {
	case !state.Exists():
		return "", ErrNoSwap
	case state.Claimed:
		return "", ErrAlreadyClaimed
	case state.Refunded:
		return "", ErrAlreadyRefunded
	}

	wallet.mu.Lock()
	defer wallet.mu.Unlock()

	tx, err := wallet.transact(ctx, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return wallet.contract.ClaimSwap(opts, secret)
	})
	if err != nil {
		return "", fmt.Errorf("failed to claim swap: %w", err)
	}
	receipt, err := bind.WaitMined(ctx, wallet.client, tx)
	if err != nil {
		return "", err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return "", fmt.Errorf("claim tx reverted: %v", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

func (wallet *wallet) Refund(ctx context.Context, swap Swap) (string, error) {
	state, err := swap.State(ctx, wallet.client)
	if err != nil {
		return "", err
	}
	switch {
	case !state.Exists():
		return "", ErrNoSwap
	case state.Claimed:
		return "", ErrAlreadyClaimed
	case state.Refunded:
		return "", ErrAlreadyRefunded
	case state.Sender != wallet.addr:
		return "", ErrOnlySenderCanRefund
	}
	expired, err := swap.Expired(ctx, wallet.client)
	if err != nil {
		return "", err
	}
	if !expired {
		return "", ErrTimelockNotPassed
	}

	wallet.mu.Lock()
	defer wallet.mu.Unlock()

	tx, err := wallet.transact(ctx, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return wallet.contract.RefundSwap(opts, swap.Hashlock)
	})
	if err != nil {
		return "", fmt.Errorf("failed to refund swap: %w", err)
	}
	receipt, err := bind.WaitMined(ctx, wallet.client, tx)
	if err != nil {
		return "", err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return "", fmt.Errorf("refund tx reverted: %v", tx.Hash().Hex())
	}
	return tx.Hash().Hex(), nil
}

// transact runs fn with a transactor carrying the wallet's tracked nonce.
// Callers must hold wallet.mu. A "nonce too low" failure recalibrates from
// the node and retries once.
func (wallet *wallet) transact(ctx context.Context, fn func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Transaction, error) {
	opts, err := wallet.transactor(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := fn(opts)
	if err != nil {
		if !strings.Contains(err.Error(), "nonce too low") {
			return nil, err
		}
		if err := wallet.calibrateNonce(ctx); err != nil {
			return nil, err
		}
		opts, err = wallet.transactor(ctx)
		if err != nil {
			return nil, err
		}
		tx, err = fn(opts)
		if err != nil {
			return nil, err
		}
	}
	wallet.nonce++
	return tx, nil
}

func (wallet *wallet) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(wallet.key, wallet.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	opts.Nonce = new(big.Int).SetUint64(wallet.nonce)
	return opts, nil
}

func (wallet *wallet) calibrateNonce(ctx context.Context) error {
	nonce, err := wallet.client.PendingNonceAt(ctx, wallet.addr)
	if err != nil {
		return fmt.Errorf("failed to calibrate nonce: %w", err)
	}
	wallet.nonce = nonce
	return nil
}
