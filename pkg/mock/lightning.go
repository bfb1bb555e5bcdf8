package mock

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/lnswapd/swapd/pkg/swap/lnswap"
)

type invoiceEntry struct {
	invoice  lnswap.Invoice
	preimage *[32]byte
	settled  bool
	canceled bool
}

// LightningNetwork is a shared in-memory payment network. Invoices created
// through any party's Lightning handle are payable by every other handle.
type LightningNetwork struct {
	mu       sync.Mutex
	invoices map[[32]byte]*invoiceEntry
}

func NewLightningNetwork() *LightningNetwork {
	return &LightningNetwork{invoices: map[[32]byte]*invoiceEntry{}}
}

// Lightning is one party's node handle. The Func fields override individual
// calls for error injection.
type Lightning struct {
	network *LightningNetwork

	FuncCreateInvoice func(ctx context.Context, hash *[32]byte, amountSats int64, memo string) (lnswap.Invoice, error)
	FuncPayInvoice    func(ctx context.Context, paymentRequest string) ([32]byte, error)
}

func NewLightning(network *LightningNetwork) *Lightning {
	return &Lightning{network: network}
}

func (ln *Lightning) CreateInvoice(ctx context.Context, hash *[32]byte, amountSats int64, memo string) (lnswap.Invoice, error) {
	if ln.FuncCreateInvoice != nil {
		return ln.FuncCreateInvoice(ctx, hash, amountSats, memo)
	}
	ln.network.mu.Lock()
	defer ln.network.mu.Unlock()

	var paymentHash [32]byte
	var preimage *[32]byte
	if hash != nil {
		paymentHash = *hash
	} else {
		secret := [32]byte{}
		if _, err := rand.Read(secret[:]); err != nil {
			return lnswap.Invoice{}, err
		}
		paymentHash = sha256.Sum256(secret[:])
		preimage = &secret
	}
	if _, ok := ln.network.invoices[paymentHash]; ok {
		return lnswap.Invoice{}, fmt.Errorf("invoice already exists for hash %x", paymentHash)
	}

	invoice := lnswap.Invoice{
		PaymentRequest: "lnmock1" + hex.EncodeToString(paymentHash[:]),
		PaymentHash:    paymentHash,
		AmountSats:     amountSats,
		CreatedAt:      time.Now(),
		Expiry:         time.Hour,
	}
	ln.network.invoices[paymentHash] = &invoiceEntry{invoice: invoice, preimage: preimage}
	return invoice, nil
}

func (ln *Lightning) PayInvoice(ctx context.Context, paymentRequest string) ([32]byte, error) {
	if ln.FuncPayInvoice != nil {
		return ln.FuncPayInvoice(ctx, paymentRequest)
	}
	hash, err := hashFromRequest(paymentRequest)
	if err != nil {
		return [32]byte{}, err
	}

	ln.network.mu.Lock()
	defer ln.network.mu.Unlock()

	entry, ok := ln.network.invoices[hash]
	switch {
	case !ok:
		return [32]byte{}, fmt.Errorf("unknown invoice %x", hash)
	case entry.canceled:
		return [32]byte{}, lnswap.ErrInvoiceCanceled
	case entry.settled:
		return [32]byte{}, fmt.Errorf("invoice %x already settled", hash)
	case entry.preimage == nil:
		return [32]byte{}, fmt.Errorf("no route to settle invoice %x", hash)
	}
	entry.settled = true
	return *entry.preimage, nil
}

func (ln *Lightning) Settled(ctx context.Context, hash [32]byte) (bool, [32]byte, error) {
	ln.network.mu.Lock()
	defer ln.network.mu.Unlock()

	entry, ok := ln.network.invoices[hash]
	if !ok {
		return false, [32]byte{}, fmt.Errorf("unknown invoice %x", hash)
	}
	if entry.canceled {
		return false, [32]byte{}, lnswap.ErrInvoiceCanceled
	}
	if !entry.settled {
		return false, [32]byte{}, nil
	}
	return true, *entry.preimage, nil
}

func (ln *Lightning) PollUntilSettled(ctx context.Context, hash [32]byte) ([32]byte, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		settled, preimage, err := ln.Settled(ctx, hash)
		if err != nil {
			return [32]byte{}, err
		}
		if settled {
			return preimage, nil
		}
		select {
		case <-ctx.Done():
			return [32]byte{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (ln *Lightning) Decode(paymentRequest string) (lnswap.Invoice, error) {
	hash, err := hashFromRequest(paymentRequest)
	if err != nil {
		return lnswap.Invoice{}, err
	}
	ln.network.mu.Lock()
	defer ln.network.mu.Unlock()

	entry, ok := ln.network.invoices[hash]
	if !ok {
		return lnswap.Invoice{}, fmt.Errorf("unknown invoice %x", hash)
	}
	return entry.invoice, nil
}

func (ln *Lightning) CancelInvoice(ctx context.Context, hash [32]byte) error {
	ln.network.mu.Lock()
	defer ln.network.mu.Unlock()

	entry, ok := ln.network.invoices[hash]
	if !ok {
		return fmt.Errorf("unknown invoice %x", hash)
	}
	if entry.settled {
		return fmt.Errorf("invoice %x already settled", hash)
	}
	entry.canceled = true
	return nil
}

// SettleWithPreimage settles a hash-bound invoice out of band, standing in
// for a payer who holds the preimage.
func (network *LightningNetwork) SettleWithPreimage(preimage [32]byte) error {
	hash := sha256.Sum256(preimage[:])
	network.mu.Lock()
	defer network.mu.Unlock()

	entry, ok := network.invoices[hash]
	if !ok {
		return fmt.Errorf("unknown invoice %x", hash)
	}
	entry.preimage = &preimage
	entry.settled = true
	return nil
}

func hashFromRequest(paymentRequest string) ([32]byte, error) {
	var hash [32]byte
	if len(paymentRequest) != 7+64 || paymentRequest[:7] != "lnmock1" {
		return hash, fmt.Errorf("malformed payment request: %v", paymentRequest)
	}
	raw, err := hex.DecodeString(paymentRequest[7:])
	if err != nil {
		return hash, fmt.Errorf("malformed payment request: %w", err)
	}
	copy(hash[:], raw)
	return hash, nil
}
