package lnswap

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/invoicesrpc"
	"github.com/lnswapd/swapd/pkg/util"
	decodepay "github.com/nbd-wtf/ln-decodepay"
	"go.uber.org/zap"
)

var (
	// ErrInvoiceCanceled is returned when a watched invoice gets canceled
	// before it settles.
	ErrInvoiceCanceled = errors.New("invoice canceled")

	// ErrPreimageMismatch is returned when a settled payment carries a
	// preimage which does not hash to the invoice payment hash.
	ErrPreimageMismatch = errors.New("preimage does not match payment hash")
)

// Invoice is the subset of an lnd invoice the swap flow cares about.
type Invoice struct {
	PaymentRequest string
	PaymentHash    [32]byte
	AmountSats     int64
	CreatedAt      time.Time
	Expiry         time.Duration
}

// CreateInvoice adds an invoice for amountSats. When hash is non-nil the
// invoice is bound to that payment hash, so settling it reveals the preimage
// held by whoever generated the hash.
func (client *Client) CreateInvoice(ctx context.Context, hash *[32]byte, amountSats int64, memo string) (Invoice, error) {
	req := &lnrpc.Invoice{
		Memo:   memo,
		Value:  amountSats,
		Expiry: int64(client.opts.InvoiceExpiry / time.Second),
	}
	if hash != nil {
		req.RHash = hash[:]
	}
	resp, err := client.ln.AddInvoice(ctx, req)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to add invoice: %w", err)
	}

	var paymentHash [32]byte
	copy(paymentHash[:], resp.RHash)
	client.logger.Info("invoice created",
		zap.String("paymentHash", fmt.Sprintf("%x", paymentHash)),
		zap.Int64("amountSats", amountSats))

	return Invoice{
		PaymentRequest: resp.PaymentRequest,
		PaymentHash:    paymentHash,
		AmountSats:     amountSats,
		CreatedAt:      time.Now(),
		Expiry:         client.opts.InvoiceExpiry,
	}, nil
}

// PayInvoice pays a bolt11 payment request and returns the preimage revealed
// by the settlement. Self payments are allowed so both swap parties can run
// against a single regtest node.
func (client *Client) PayInvoice(ctx context.Context, paymentRequest string) ([32]byte, error) {
	decoded, err := Decode(paymentRequest)
	if err != nil {
		return [32]byte{}, err
	}

	resp, err := client.ln.SendPaymentSync(ctx, &lnrpc.SendRequest{
		PaymentRequest:   paymentRequest,
		AllowSelfPayment: true,
	})
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to send payment: %w", err)
	}
	if resp.PaymentError != "" {
		return [32]byte{}, fmt.Errorf("payment failed: %v", resp.PaymentError)
	}

	var preimage [32]byte
	copy(preimage[:], resp.PaymentPreimage)
	if sha256.Sum256(preimage[:]) != decoded.PaymentHash {
		return [32]byte{}, ErrPreimageMismatch
	}

	client.logger.Info("invoice paid",
		zap.String("paymentHash", fmt.Sprintf("%x", decoded.PaymentHash)))
	return preimage, nil
}

// LookupInvoice fetches the invoice state for a payment hash.
func (client *Client) LookupInvoice(ctx context.Context, hash [32]byte) (*lnrpc.Invoice, error) {
	invoice, err := client.ln.LookupInvoice(ctx, &lnrpc.PaymentHash{RHash: hash[:]})
	if err != nil {
		return nil, fmt.Errorf("failed to lookup invoice: %w", err)
	}
	return invoice, nil
}

// Settled reports whether the invoice for hash has settled, and if so
// returns the preimage.
func (client *Client) Settled(ctx context.Context, hash [32]byte) (bool, [32]byte, error) {
	invoice, err := client.LookupInvoice(ctx, hash)
	if err != nil {
		return false, [32]byte{}, err
	}
	switch invoice.State {
	case lnrpc.Invoice_SETTLED:
		var preimage [32]byte
		copy(preimage[:], invoice.RPreimage)
		if sha256.Sum256(preimage[:]) != hash {
			return true, [32]byte{}, ErrPreimageMismatch
		}
		return true, preimage, nil
	case lnrpc.Invoice_CANCELED:
		return false, [32]byte{}, ErrInvoiceCanceled
	default:
		return false, [32]byte{}, nil
	}
}

// PollUntilSettled polls the invoice until it settles, the invoice is
// canceled, or ctx is done.
func (client *Client) PollUntilSettled(ctx context.Context, hash [32]byte) ([32]byte, error) {
	ticker := time.NewTicker(client.opts.PollInterval)
	defer ticker.Stop()

	for {
		settled, preimage, err := client.Settled(ctx, hash)
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

// CancelInvoice cancels an open invoice for hash.
func (client *Client) CancelInvoice(ctx context.Context, hash [32]byte) error {
	_, err := client.invoices.CancelInvoice(ctx, &invoicesrpc.CancelInvoiceMsg{
		PaymentHash: hash[:],
	})
	if err != nil {
		return fmt.Errorf("failed to cancel invoice: %w", err)
	}
	client.logger.Info("invoice canceled", zap.String("paymentHash", fmt.Sprintf("%x", hash)))
	return nil
}

// Decode exposes the package-level decoder on the client, so callers can
// stay behind a single interface.
func (client *Client) Decode(paymentRequest string) (Invoice, error) {
	return Decode(paymentRequest)
}

// Decode parses a bolt11 payment request without contacting a node.
func Decode(paymentRequest string) (Invoice, error) {
	bolt11, err := decodepay.Decodepay(paymentRequest)
	if err != nil {
		return Invoice{}, fmt.Errorf("failed to decode payment request: %w", err)
	}
	hash, err := util.ParseHash(bolt11.PaymentHash)
	if err != nil {
		return Invoice{}, fmt.Errorf("invalid payment hash in invoice: %w", err)
	}
	return Invoice{
		PaymentRequest: paymentRequest,
		PaymentHash:    hash,
		AmountSats:     bolt11.MSatoshi / 1000,
		CreatedAt:      time.Unix(int64(bolt11.CreatedAt), 0),
		Expiry:         time.Duration(bolt11.Expiry) * time.Second,
	}, nil
}
