package lnswap

import (
	"fmt"
	"time"
)

// Options control invoice creation and settlement polling.
type Options struct {
	InvoiceExpiry time.Duration
	PollInterval  time.Duration
}

func NewOptions() Options {
	return Options{
		InvoiceExpiry: time.Hour,
		PollInterval:  2 * time.Second,
	}
}

func (opts Options) WithInvoiceExpiry(expiry time.Duration) Options {
	opts.InvoiceExpiry = expiry
	return opts
}

func (opts Options) WithPollInterval(interval time.Duration) Options {
	opts.PollInterval = interval
	return opts
}

func (opts Options) Validate() error {
	if opts.InvoiceExpiry < time.Minute {
		return fmt.Errorf("invoice expiry too short: %v", opts.InvoiceExpiry)
	}
	if opts.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval: %v", opts.PollInterval)
	}
	return nil
}
