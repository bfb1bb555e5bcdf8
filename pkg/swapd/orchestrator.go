package swapd

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lnswapd/swapd/pkg/intent"
	"github.com/lnswapd/swapd/pkg/store"
	"github.com/lnswapd/swapd/pkg/swap"
	"github.com/lnswapd/swapd/pkg/swap/ethswap"
	"github.com/lnswapd/swapd/pkg/swap/lnswap"
	"github.com/lnswapd/swapd/pkg/util"
	"go.uber.org/zap"
)

var (
	// ErrUnknownIntention is returned when a dTag resolves to nothing on
	// the relay network.
	ErrUnknownIntention = errors.New("unknown intention")

	// ErrSelfAcceptance is returned when a party tries to accept its own
	// intention without the test override.
	ErrSelfAcceptance = errors.New("cannot accept own intention")

	// ErrRoleMismatch is returned when the calling party is not assigned
	// the role an operation requires.
	ErrRoleMismatch = errors.New("operation not permitted for this role")

	// ErrNotParticipant is returned when the calling party is neither
	// poster nor accepter of the intention.
	ErrNotParticipant = errors.New("not a participant of this swap")

	// ErrHashMismatch is returned when a published invoice does not carry
	// the payment hash the intention advertises.
	ErrHashMismatch = errors.New("payment hash mismatch")

	// ErrAmountMismatch is returned when a published invoice asks for a
	// different amount than the intention advertises.
	ErrAmountMismatch = errors.New("invoice amount does not match intention")

	// ErrNotReady is returned when an operation fires before the state it
	// depends on has been reached.
	ErrNotReady = errors.New("swap not in required state")
)

// Escrow is the on-chain side of a swap. Implemented by the contract wallet
// adapter and by the in-memory mock.
type Escrow interface {
	Address() common.Address
	Initiate(ctx context.Context, hashlock [32]byte, amount *big.Int, timelock int64) (string, error)
	Claim(ctx context.Context, hashlock, secret [32]byte) (string, error)
	Refund(ctx context.Context, hashlock [32]byte) (string, error)
	Status(ctx context.Context, hashlock [32]byte) (ethswap.State, error)
	Secret(ctx context.Context, hashlock [32]byte) ([32]byte, error)
}

// Lightning is the off-chain side of a swap.
type Lightning interface {
	CreateInvoice(ctx context.Context, hash *[32]byte, amountSats int64, memo string) (lnswap.Invoice, error)
	PayInvoice(ctx context.Context, paymentRequest string) ([32]byte, error)
	Settled(ctx context.Context, hash [32]byte) (bool, [32]byte, error)
	PollUntilSettled(ctx context.Context, hash [32]byte) ([32]byte, error)
	CancelInvoice(ctx context.Context, hash [32]byte) error
	Decode(paymentRequest string) (lnswap.Invoice, error)
}

// Ledger is the negotiation side of a swap.
type Ledger interface {
	Identity() intent.Identity
	PublishIntention(ctx context.Context, params intent.IntentionParams) (intent.Intention, error)
	PublishAcceptance(ctx context.Context, intention intent.Intention, accepterAddress string) (string, error)
	PublishInvoice(ctx context.Context, intention intent.Intention, invoice intent.InvoiceData, publisherAddress string) (string, error)
	FetchAll(ctx context.Context) ([]intent.Intention, error)
	Get(ctx context.Context, dTag string) (intent.Intention, bool, error)
}

// Config tunes orchestrator behaviour.
type Config struct {
	// LockMargin is how far the on-chain timelock must outlive the
	// invoice expiry, so the locker can always refund after a stale
	// invoice lapses.
	LockMargin time.Duration

	// AllowSelfAccept permits accepting one's own intention. Test mode
	// only.
	AllowSelfAccept bool

	// AutoRefund makes the reconcile loop fire refunds for expired,
	// unclaimed locks.
	AutoRefund bool

	// ReconcileInterval is the cadence of the background reconcile loop.
	ReconcileInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		LockMargin:        time.Hour,
		ReconcileInterval: 15 * time.Second,
	}
}

// Status is a point-in-time derivation of a swap's position, rebuilt from
// the relay network and the contract on every call.
type Status struct {
	Intention intent.Intention
	State     swap.State
	Escrow    ethswap.State
	LastError string
}

// Orchestrator drives a swap across its three collaborators. It holds no
// authoritative state; the journal only records progress hints and revealed
// secrets.
type Orchestrator struct {
	logger    *zap.Logger
	config    Config
	escrow    Escrow
	lightning Lightning
	ledger    Ledger
	journal   store.Store

	quit chan struct{}
	wg   *sync.WaitGroup
}

func NewOrchestrator(logger *zap.Logger, config Config, escrow Escrow, lightning Lightning, ledger Ledger, journal store.Store) *Orchestrator {
	if config.LockMargin <= 0 {
		config.LockMargin = time.Hour
	}
	if config.ReconcileInterval <= 0 {
		config.ReconcileInterval = 15 * time.Second
	}
	return &Orchestrator{
		logger:    logger,
		config:    config,
		escrow:    escrow,
		lightning: lightning,
		ledger:    ledger,
		journal:   journal,
		quit:      make(chan struct{}),
		wg:        new(sync.WaitGroup),
	}
}

// List returns the current intention set, newest first.
func (orch *Orchestrator) List(ctx context.Context) ([]intent.Intention, error) {
	return orch.ledger.FetchAll(ctx)
}

// Propose publishes a new intention and journals it.
func (orch *Orchestrator) Propose(ctx context.Context, wanted swap.Asset, amountBNB, amountSats string) (intent.Intention, error) {
	if _, err := util.ParseBNB(amountBNB); err != nil {
		return intent.Intention{}, err
	}
	if _, err := util.ParseSats(amountSats); err != nil {
		return intent.Intention{}, err
	}

	intention, err := orch.ledger.PublishIntention(ctx, intent.IntentionParams{
		WantedAsset:   wanted,
		AmountBNB:     amountBNB,
		AmountSats:    amountSats,
		PosterAddress: orch.escrow.Address().Hex(),
	})
	if err != nil {
		return intent.Intention{}, err
	}
	role := swap.ParticipantFor(wanted, swap.RoleLocker)
	if err := orch.journal.PutSwap(intention.DTag, rolesOf(wanted, swap.Poster)); err != nil {
		orch.logger.Warn("failed to journal proposal", zap.String("dTag", intention.DTag), zap.Error(err))
	}
	orch.logger.Info("proposed swap",
		zap.String("dTag", intention.DTag),
		zap.String("wantedAsset", string(wanted)),
		zap.String("locker", role.String()))
	return intention, nil
}

// Accept publishes an acceptance for an open intention.
func (orch *Orchestrator) Accept(ctx context.Context, dTag string) error {
	intention, err := orch.intention(ctx, dTag)
	if err != nil {
		return err
	}
	if intention.Status != intent.StatusOpen {
		return fmt.Errorf("%w: intention is %v", ErrNotReady, intention.Status)
	}
	if intention.PosterPubkey == orch.ledger.Identity().PublicKey && !orch.config.AllowSelfAccept {
		return ErrSelfAcceptance
	}

	if _, err := orch.ledger.PublishAcceptance(ctx, intention, orch.escrow.Address().Hex()); err != nil {
		return err
	}
	wanted := swap.Asset(intention.WantedAsset)
	if err := orch.journal.PutSwap(dTag, rolesOf(wanted, swap.Accepter)); err != nil {
		orch.logger.Warn("failed to journal acceptance", zap.String("dTag", dTag), zap.Error(err))
	}
	if err := orch.journal.UpdateStage(dTag, store.Accepted, nil); err != nil {
		orch.logger.Warn("failed to journal stage", zap.String("dTag", dTag), zap.Error(err))
	}
	orch.logger.Info("accepted swap", zap.String("dTag", dTag))
	return nil
}

// PublishInvoice creates an invoice on the local node and announces it. Only
// the role-designated invoice publisher may call it.
func (orch *Orchestrator) PublishInvoice(ctx context.Context, dTag string) (lnswap.Invoice, error) {
	intention, err := orch.intention(ctx, dTag)
	if err != nil {
		return lnswap.Invoice{}, err
	}
	if intention.Status != intent.StatusAccepted {
		return lnswap.Invoice{}, fmt.Errorf("%w: intention is %v", ErrNotReady, intention.Status)
	}
	if err := orch.requireRole(intention, swap.RoleInvoicePublisher); err != nil {
		return lnswap.Invoice{}, err
	}
	sats, err := util.ParseSats(intention.AmountSats)
	if err != nil {
		return lnswap.Invoice{}, err
	}

	invoice, err := orch.lightning.CreateInvoice(ctx, nil, sats, "atomic swap "+shortTag(dTag))
	if err != nil {
		return lnswap.Invoice{}, err
	}
	_, err = orch.ledger.PublishInvoice(ctx, intention, intent.InvoiceData{
		PaymentRequest: invoice.PaymentRequest,
		PaymentHash:    util.HashToHex(invoice.PaymentHash),
	}, orch.escrow.Address().Hex())
	if err != nil {
		return lnswap.Invoice{}, err
	}

	if err := orch.journal.UpdatePaymentHash(dTag, util.HashToHex(invoice.PaymentHash)); err != nil {
		orch.logger.Warn("failed to journal payment hash", zap.String("dTag", dTag), zap.Error(err))
	}
	if err := orch.journal.UpdateStage(dTag, store.InvoiceReady, nil); err != nil {
		orch.logger.Warn("failed to journal stage", zap.String("dTag", dTag), zap.Error(err))
	}
	orch.logger.Info("published invoice",
		zap.String("dTag", dTag),
		zap.String("paymentHash", util.HashToHex(invoice.PaymentHash)))
	return invoice, nil
}

// Lock funds on chain under the published invoice's hash. Only the
// role-designated locker may call it. The timelock outlives the invoice
// expiry by the configured margin.
func (orch *Orchestrator) Lock(ctx context.Context, dTag string) (string, error) {
	intention, err := orch.intention(ctx, dTag)
	if err != nil {
		return "", err
	}
	if !intention.InvoiceReady() {
		return "", fmt.Errorf("%w: no invoice published", ErrNotReady)
	}
	if err := orch.requireRole(intention, swap.RoleLocker); err != nil {
		return "", err
	}

	invoice, err := orch.lightning.Decode(intention.PaymentRequest)
	if err != nil {
		return "", err
	}
	hash, err := util.ParseHash(intention.PaymentHash)
	if err != nil {
		return "", fmt.Errorf("intention carries a malformed payment hash: %w", err)
	}
	if invoice.PaymentHash != hash {
		return "", ErrHashMismatch
	}
	amount, err := util.ParseBNB(intention.AmountBNB)
	if err != nil {
		return "", err
	}

	timelock := time.Now().Add(invoice.Expiry + orch.config.LockMargin).Unix()
	txHash, err := orch.escrow.Initiate(ctx, hash, amount, timelock)
	if err != nil {
		if jerr := orch.journal.UpdateStage(dTag, store.FailedToLock, err); jerr != nil {
			orch.logger.Warn("failed to journal lock failure", zap.String("dTag", dTag), zap.Error(jerr))
		}
		return "", err
	}

	if err := orch.journal.UpdateTxHash(dTag, store.Lock, txHash); err != nil {
		orch.logger.Warn("failed to journal lock tx", zap.String("dTag", dTag), zap.Error(err))
	}
	if err := orch.journal.UpdateStage(dTag, store.Locked, nil); err != nil {
		orch.logger.Warn("failed to journal stage", zap.String("dTag", dTag), zap.Error(err))
	}
	orch.logger.Info("locked funds",
		zap.String("dTag", dTag),
		zap.String("tx", txHash),
		zap.Int64("timelock", timelock))
	return txHash, nil
}

// Claim pays the invoice, learns the preimage and claims the locked funds.
// Only the role-designated claimer may call it.
func (orch *Orchestrator) Claim(ctx context.Context, dTag string) (string, error) {
	intention, err := orch.intention(ctx, dTag)
	if err != nil {
		return "", err
	}
	if !intention.InvoiceReady() {
		return "", fmt.Errorf("%w: no invoice published", ErrNotReady)
	}
	if err := orch.requireRole(intention, swap.RoleClaimer); err != nil {
		return "", err
	}
	hash, err := util.ParseHash(intention.PaymentHash)
	if err != nil {
		return "", fmt.Errorf("intention carries a malformed payment hash: %w", err)
	}

	// Paying the invoice is irreversible, so every reason the claim could
	// fail is checked before the sats leave.
	state, err := orch.escrow.Status(ctx, hash)
	if err != nil {
		return "", err
	}
	switch {
	case !state.Exists():
		return "", fmt.Errorf("%w: funds not locked on chain", ErrNotReady)
	case state.Refunded:
		return "", ethswap.ErrAlreadyRefunded
	case state.Claimed:
		return "", ethswap.ErrAlreadyClaimed
	case state.Timelock != nil && time.Now().Unix() >= state.Timelock.Int64():
		return "", fmt.Errorf("%w: timelock has expired", ErrNotReady)
	}

	invoice, err := orch.lightning.Decode(intention.PaymentRequest)
	if err != nil {
		return "", err
	}
	if invoice.PaymentHash != hash {
		return "", ErrHashMismatch
	}
	sats, err := util.ParseSats(intention.AmountSats)
	if err != nil {
		return "", err
	}
	if invoice.AmountSats != sats {
		return "", fmt.Errorf("%w: invoice asks for %d sats, agreed on %d", ErrAmountMismatch, invoice.AmountSats, sats)
	}
	if !invoice.CreatedAt.IsZero() && invoice.Expiry > 0 && time.Now().After(invoice.CreatedAt.Add(invoice.Expiry)) {
		return "", fmt.Errorf("%w: invoice has expired", ErrNotReady)
	}

	preimage, err := orch.lightning.PayInvoice(ctx, intention.PaymentRequest)
	if err != nil {
		return "", err
	}
	if sha256.Sum256(preimage[:]) != hash {
		return "", ErrHashMismatch
	}

	txHash, err := orch.escrow.Claim(ctx, hash, preimage)
	if err != nil {
		if jerr := orch.journal.UpdateStage(dTag, store.FailedToClaim, err); jerr != nil {
			orch.logger.Warn("failed to journal claim failure", zap.String("dTag", dTag), zap.Error(jerr))
		}
		return "", err
	}

	if err := orch.journal.PutSecret(util.HashToHex(hash), util.HashToHex(preimage)); err != nil {
		orch.logger.Warn("failed to journal secret", zap.String("dTag", dTag), zap.Error(err))
	}
	if err := orch.journal.UpdateTxHash(dTag, store.Claim, txHash); err != nil {
		orch.logger.Warn("failed to journal claim tx", zap.String("dTag", dTag), zap.Error(err))
	}
	if err := orch.journal.UpdateStage(dTag, store.Settled, nil); err != nil {
		orch.logger.Warn("failed to journal stage", zap.String("dTag", dTag), zap.Error(err))
	}
	orch.logger.Info("claimed funds", zap.String("dTag", dTag), zap.String("tx", txHash))
	return txHash, nil
}

// Refund takes locked funds back after timelock expiry. Only the locker may
// call it; the contract enforces the same rule.
func (orch *Orchestrator) Refund(ctx context.Context, dTag string) (string, error) {
	intention, err := orch.intention(ctx, dTag)
	if err != nil {
		return "", err
	}
	if !intention.InvoiceReady() {
		return "", fmt.Errorf("%w: no invoice published", ErrNotReady)
	}
	if err := orch.requireRole(intention, swap.RoleLocker); err != nil {
		return "", err
	}
	hash, err := util.ParseHash(intention.PaymentHash)
	if err != nil {
		return "", fmt.Errorf("intention carries a malformed payment hash: %w", err)
	}

	txHash, err := orch.escrow.Refund(ctx, hash)
	if err != nil {
		if jerr := orch.journal.UpdateStage(dTag, store.FailedToRefund, err); jerr != nil {
			orch.logger.Warn("failed to journal refund failure", zap.String("dTag", dTag), zap.Error(jerr))
		}
		return "", err
	}

	if err := orch.journal.UpdateTxHash(dTag, store.Refund, txHash); err != nil {
		orch.logger.Warn("failed to journal refund tx", zap.String("dTag", dTag), zap.Error(err))
	}
	if err := orch.journal.UpdateStage(dTag, store.Refunded, nil); err != nil {
		orch.logger.Warn("failed to journal stage", zap.String("dTag", dTag), zap.Error(err))
	}
	orch.logger.Info("refunded funds", zap.String("dTag", dTag), zap.String("tx", txHash))
	return txHash, nil
}

// Status re-derives where a swap stands from the relay network and the
// contract. Nothing is trusted from the journal except the last error.
func (orch *Orchestrator) Status(ctx context.Context, dTag string) (Status, error) {
	intention, err := orch.intention(ctx, dTag)
	if err != nil {
		return Status{}, err
	}

	status := Status{Intention: intention, State: deriveNegotiationState(intention)}
	if intention.PaymentHash != "" {
		hash, err := util.ParseHash(intention.PaymentHash)
		if err == nil {
			state, err := orch.escrow.Status(ctx, hash)
			if err != nil {
				return Status{}, err
			}
			status.Escrow = state
			status.State = deriveState(intention, state)
		}
	}
	if journaled, err := orch.journal.SwapByDTag(dTag); err == nil {
		status.LastError = journaled.Error
	}
	return status, nil
}

// Secret returns the revealed preimage for a payment hash, first from the
// journal, then from the claim logs.
func (orch *Orchestrator) Secret(ctx context.Context, paymentHash string) (string, error) {
	if secret, err := orch.journal.Secret(paymentHash); err == nil && secret != "" {
		return secret, nil
	}
	hash, err := util.ParseHash(paymentHash)
	if err != nil {
		return "", err
	}
	secret, err := orch.escrow.Secret(ctx, hash)
	if err != nil {
		return "", err
	}
	return util.HashToHex(secret), nil
}

// Start launches the background reconcile loop.
func (orch *Orchestrator) Start() {
	orch.wg.Add(1)
	go func() {
		defer orch.wg.Done()

		ticker := time.NewTicker(orch.config.ReconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-orch.quit:
				return
			case <-ticker.C:
				orch.reconcile()
			}
		}
	}()
}

// Stop terminates the reconcile loop and waits for it.
func (orch *Orchestrator) Stop() {
	close(orch.quit)
	orch.wg.Wait()
}

// reconcile advances journal entries whose on-chain or off-chain condition
// has resolved since the last pass. It never writes ground truth, only
// progress hints.
func (orch *Orchestrator) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), orch.config.ReconcileInterval)
	defer cancel()

	swaps, err := orch.journal.Swaps()
	if err != nil {
		orch.logger.Warn("reconcile: failed to list journal", zap.Error(err))
		return
	}
	for _, journaled := range swaps {
		if journaled.Stage != store.Locked || journaled.PaymentHash == "" {
			continue
		}
		hash, err := util.ParseHash(journaled.PaymentHash)
		if err != nil {
			continue
		}
		state, err := orch.escrow.Status(ctx, hash)
		if err != nil {
			orch.logger.Warn("reconcile: escrow read failed", zap.String("dTag", journaled.DTag), zap.Error(err))
			continue
		}
		switch {
		case state.Claimed:
			if secret, err := orch.escrow.Secret(ctx, hash); err == nil {
				if err := orch.journal.PutSecret(journaled.PaymentHash, util.HashToHex(secret)); err != nil {
					orch.logger.Warn("reconcile: failed to journal secret", zap.String("dTag", journaled.DTag), zap.Error(err))
				}
			}
			if err := orch.journal.UpdateStage(journaled.DTag, store.Settled, nil); err != nil {
				orch.logger.Warn("reconcile: failed to journal stage", zap.String("dTag", journaled.DTag), zap.Error(err))
			}
			orch.logger.Info("reconcile: swap settled", zap.String("dTag", journaled.DTag))

		case state.Refunded:
			if err := orch.journal.UpdateStage(journaled.DTag, store.Refunded, nil); err != nil {
				orch.logger.Warn("reconcile: failed to journal stage", zap.String("dTag", journaled.DTag), zap.Error(err))
			}

		case orch.config.AutoRefund && state.Timelock != nil && time.Now().Unix() >= state.Timelock.Int64():
			if _, err := orch.Refund(ctx, journaled.DTag); err != nil {
				orch.logger.Warn("reconcile: auto refund failed", zap.String("dTag", journaled.DTag), zap.Error(err))
			}
		}
	}
}

func (orch *Orchestrator) intention(ctx context.Context, dTag string) (intent.Intention, error) {
	intention, found, err := orch.ledger.Get(ctx, dTag)
	if err != nil {
		return intent.Intention{}, err
	}
	if !found {
		return intent.Intention{}, ErrUnknownIntention
	}
	return intention, nil
}

// requireRole checks that this daemon's identity holds the given role for
// the intention.
func (orch *Orchestrator) requireRole(intention intent.Intention, role swap.Role) error {
	participant, err := orch.participantOf(intention)
	if err != nil {
		return err
	}
	wanted := swap.Asset(intention.WantedAsset)
	if !wanted.Valid() {
		return fmt.Errorf("intention carries invalid wanted asset: %v", intention.WantedAsset)
	}
	if !swap.HasRole(wanted, participant, role) {
		return fmt.Errorf("%w: %v is not the %v", ErrRoleMismatch, participant, role)
	}
	return nil
}

func (orch *Orchestrator) participantOf(intention intent.Intention) (swap.Participant, error) {
	pubkey := orch.ledger.Identity().PublicKey
	switch pubkey {
	case intention.PosterPubkey:
		return swap.Poster, nil
	case intention.AcceptedByPubkey:
		return swap.Accepter, nil
	default:
		return 0, ErrNotParticipant
	}
}

// deriveNegotiationState maps ledger status to the swap state machine.
func deriveNegotiationState(intention intent.Intention) swap.State {
	switch intention.Status {
	case intent.StatusInvoiceReady:
		return swap.StateInvoiceReady
	case intent.StatusAccepted:
		return swap.StateAccepted
	default:
		return swap.StateCreated
	}
}

// deriveState folds the escrow reading over the negotiation state. The
// contract outranks the relay network once funds are locked.
func deriveState(intention intent.Intention, escrow ethswap.State) swap.State {
	switch {
	case escrow.Refunded:
		return swap.StateRefunded
	case escrow.Claimed:
		return swap.StateSettled
	case escrow.Exists():
		return swap.StateLocked
	default:
		return deriveNegotiationState(intention)
	}
}

// rolesOf names the journal role string for a participant.
func rolesOf(wanted swap.Asset, participant swap.Participant) string {
	if !wanted.Valid() {
		return "unknown"
	}
	if swap.HasRole(wanted, participant, swap.RoleLocker) {
		return swap.RoleLocker.String()
	}
	return swap.RoleClaimer.String()
}

func shortTag(dTag string) string {
	if len(dTag) > 8 {
		return dTag[:8]
	}
	return dTag
}
