package ethswap

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Options describe the escrow deployment a client talks to.
type Options struct {
	ChainID      *big.Int
	SwapAddr     common.Address
	PollInterval time.Duration
}

func NewOptions(chainID *big.Int, swapAddr common.Address) Options {
	return Options{
		ChainID:      chainID,
		SwapAddr:     swapAddr,
		PollInterval: 5 * time.Second,
	}
}

func (opts Options) WithPollInterval(interval time.Duration) Options {
	opts.PollInterval = interval
	return opts
}

func (opts Options) Validate() error {
	if opts.ChainID == nil || opts.ChainID.Sign() <= 0 {
		return fmt.Errorf("invalid chain id: %v", opts.ChainID)
	}
	if opts.SwapAddr == (common.Address{}) {
		return fmt.Errorf("swap contract address is not set")
	}
	if opts.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval: %v", opts.PollInterval)
	}
	return nil
}
