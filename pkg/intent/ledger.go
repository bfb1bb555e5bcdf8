package intent

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lnswapd/swapd/pkg/swap"
	"github.com/nbd-wtf/go-nostr"
	"go.uber.org/zap"
)

var (
	// ErrNoIdentity is returned when publishing without a signing identity.
	ErrNoIdentity = errors.New("nostr identity not established")

	// ErrAllRelaysFailed is returned when an event could not be delivered
	// to any configured relay.
	ErrAllRelaysFailed = errors.New("all relays rejected the event")
)

// Transport publishes and queries signed events. The production
// implementation fans out over websocket relays; tests swap in an in-memory
// one.
type Transport interface {
	Publish(ctx context.Context, ev nostr.Event) error
	Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
}

// Relays is a Transport over a set of public relay endpoints. Publishing
// succeeds if at least one relay takes the event; queries merge results from
// every reachable relay.
type Relays struct {
	logger *zap.Logger
	urls   []string
}

func NewRelays(logger *zap.Logger, urls []string) (*Relays, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no relay urls configured")
	}
	return &Relays{logger: logger, urls: urls}, nil
}

func (relays *Relays) Publish(ctx context.Context, ev nostr.Event) error {
	var delivered atomic.Bool
	wg := new(sync.WaitGroup)
	for _, url := range relays.urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			relay, err := nostr.RelayConnect(ctx, url)
			if err != nil {
				relays.logger.Warn("relay connect failed", zap.String("relay", url), zap.Error(err))
				return
			}
			defer relay.Close()
			if err := relay.Publish(ctx, ev); err != nil {
				relays.logger.Warn("relay publish failed", zap.String("relay", url), zap.Error(err))
				return
			}
			delivered.Store(true)
		}(url)
	}
	wg.Wait()
	if !delivered.Load() {
		return ErrAllRelaysFailed
	}
	return nil
}

func (relays *Relays) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	type result struct {
		events []*nostr.Event
		err    error
	}
	results := make(chan result, len(relays.urls))
	for _, url := range relays.urls {
		go func(url string) {
			relay, err := nostr.RelayConnect(ctx, url)
			if err != nil {
				results <- result{err: err}
				return
			}
			defer relay.Close()
			events, err := relay.QuerySync(ctx, filter)
			results <- result{events: events, err: err}
		}(url)
	}

	seen := map[string]bool{}
	merged := []*nostr.Event{}
	var lastErr error
	for range relays.urls {
		res := <-results
		if res.err != nil {
			lastErr = res.err
			continue
		}
		for _, ev := range res.events {
			if ev == nil || seen[ev.ID] {
				continue
			}
			seen[ev.ID] = true
			merged = append(merged, ev)
		}
	}
	if len(merged) == 0 && lastErr != nil {
		return nil, fmt.Errorf("failed to query relays: %w", lastErr)
	}
	return merged, nil
}

// InvoiceData is the payload of an invoice publication.
type InvoiceData struct {
	PaymentRequest string
	PaymentHash    string
}

// IntentionParams describe a new swap proposal.
type IntentionParams struct {
	WantedAsset     swap.Asset
	AmountBNB       string
	AmountSats      string
	PosterAddress   string
	ContractAddress string
	Timelock        *int64
}

// Ledger publishes and reconstructs swap intentions. It holds no state of
// its own; every read folds whatever the transport returns.
type Ledger struct {
	logger    *zap.Logger
	transport Transport
	identity  Identity
	topic     string
	limit     int
}

func NewLedger(logger *zap.Logger, transport Transport, identity Identity, topic string) *Ledger {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Ledger{
		logger:    logger,
		transport: transport,
		identity:  identity,
		topic:     topic,
		limit:     300,
	}
}

// Identity returns the ledger's signing identity.
func (ledger *Ledger) Identity() Identity {
	return ledger.identity
}

// PublishIntention signs and distributes a new proposal under a fresh dTag.
func (ledger *Ledger) PublishIntention(ctx context.Context, params IntentionParams) (Intention, error) {
	if ledger.identity.PublicKey == "" {
		return Intention{}, ErrNoIdentity
	}
	if !params.WantedAsset.Valid() {
		return Intention{}, fmt.Errorf("invalid wanted asset: %v", params.WantedAsset)
	}
	if params.AmountBNB == "" || params.AmountSats == "" {
		return Intention{}, fmt.Errorf("intention amounts are not set")
	}

	dTag, err := generateDTag(ledger.identity.PublicKey, params)
	if err != nil {
		return Intention{}, err
	}
	content := IntentionContent{
		DTag:             dTag,
		PosterPubkey:     ledger.identity.PublicKey,
		PosterEvmAddress: params.PosterAddress,
		Status:           StatusOpen,
		WantedAsset:      string(params.WantedAsset),
		AmountBNB:        params.AmountBNB,
		AmountSats:       params.AmountSats,
		ContractAddress:  params.ContractAddress,
		Timelock:         params.Timelock,
	}
	ev, err := ledger.signedEvent(KindIntention, content, nostr.Tags{
		{"d", dTag},
		{"t", ledger.topic},
		{"s", StatusOpen},
		{"w", string(params.WantedAsset)},
		{"p", ledger.identity.PublicKey},
	})
	if err != nil {
		return Intention{}, err
	}
	if err := ledger.transport.Publish(ctx, ev); err != nil {
		return Intention{}, err
	}
	ledger.logger.Info("intention published",
		zap.String("dTag", dTag),
		zap.String("wantedAsset", string(params.WantedAsset)))

	return Intention{
		DTag:             dTag,
		ID:               ev.ID,
		CreatedAt:        int64(ev.CreatedAt),
		PosterPubkey:     ledger.identity.PublicKey,
		PosterEvmAddress: params.PosterAddress,
		Status:           StatusOpen,
		WantedAsset:      string(params.WantedAsset),
		AmountBNB:        params.AmountBNB,
		AmountSats:       params.AmountSats,
		ContractAddress:  params.ContractAddress,
		Timelock:         params.Timelock,
	}, nil
}

// PublishAcceptance signs and distributes an acceptance of someone's
// intention. Business rules like self-acceptance are enforced upstream, the
// ledger is append-only.
func (ledger *Ledger) PublishAcceptance(ctx context.Context, intention Intention, accepterAddress string) (string, error) {
	if ledger.identity.PublicKey == "" {
		return "", ErrNoIdentity
	}
	if intention.PosterPubkey == "" || intention.DTag == "" || intention.ID == "" {
		return "", fmt.Errorf("invalid intention: missing poster pubkey, dTag or id")
	}

	now := time.Now().Unix()
	content := AcceptanceContent{
		DTag:               intention.DTag,
		IntentionID:        intention.ID,
		Status:             StatusAccepted,
		PosterPubkey:       intention.PosterPubkey,
		AccepterPubkey:     ledger.identity.PublicKey,
		AccepterEvmAddress: accepterAddress,
		AcceptedAt:         now,
	}
	ev, err := ledger.signedEvent(KindAcceptance, content, nostr.Tags{
		{"t", ledger.topic},
		{"s", StatusAccepted},
		{"w", intention.WantedAsset},
		{"a", ARef(intention.PosterPubkey, intention.DTag)},
		{"e", intention.ID},
		{"d", intention.DTag},
		{"p", intention.PosterPubkey},
		{"p", ledger.identity.PublicKey},
	})
	if err != nil {
		return "", err
	}
	if err := ledger.transport.Publish(ctx, ev); err != nil {
		return "", err
	}
	ledger.logger.Info("acceptance published", zap.String("dTag", intention.DTag))
	return ev.ID, nil
}

// PublishInvoice signs and distributes the invoice for an accepted
// intention.
func (ledger *Ledger) PublishInvoice(ctx context.Context, intention Intention, invoice InvoiceData, publisherAddress string) (string, error) {
	if ledger.identity.PublicKey == "" {
		return "", ErrNoIdentity
	}
	if intention.PosterPubkey == "" || intention.DTag == "" || intention.ID == "" {
		return "", fmt.Errorf("invalid intention: missing poster pubkey, dTag or id")
	}
	if invoice.PaymentRequest == "" || invoice.PaymentHash == "" {
		return "", fmt.Errorf("invoice lacks payment request or payment hash")
	}

	content := InvoiceContent{
		DTag:                       intention.DTag,
		IntentionID:                intention.ID,
		Status:                     StatusInvoiceReady,
		PosterPubkey:               intention.PosterPubkey,
		InvoicePublisherPubkey:     ledger.identity.PublicKey,
		InvoicePublisherEvmAddress: publisherAddress,
		PaymentRequest:             invoice.PaymentRequest,
		PaymentHash:                invoice.PaymentHash,
		PublishedAt:                time.Now().Unix(),
	}
	ev, err := ledger.signedEvent(KindInvoice, content, nostr.Tags{
		{"t", ledger.topic},
		{"s", StatusInvoiceReady},
		{"w", intention.WantedAsset},
		{"a", ARef(intention.PosterPubkey, intention.DTag)},
		{"e", intention.ID},
		{"d", intention.DTag},
		{"h", invoice.PaymentHash},
		{"p", intention.PosterPubkey},
		{"p", ledger.identity.PublicKey},
	})
	if err != nil {
		return "", err
	}
	if err := ledger.transport.Publish(ctx, ev); err != nil {
		return "", err
	}
	ledger.logger.Info("invoice published",
		zap.String("dTag", intention.DTag),
		zap.String("paymentHash", invoice.PaymentHash))
	return ev.ID, nil
}

// FetchAll queries all three event kinds and folds them into the current
// intention set, newest first. Events with bad signatures are dropped before
// the fold.
func (ledger *Ledger) FetchAll(ctx context.Context) ([]Intention, error) {
	all := []*nostr.Event{}
	for _, kind := range []int{KindIntention, KindAcceptance, KindInvoice} {
		events, err := ledger.transport.Query(ctx, nostr.Filter{
			Kinds: []int{kind},
			Tags:  nostr.TagMap{"t": []string{ledger.topic}},
			Limit: ledger.limit,
		})
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if ok, err := ev.CheckSignature(); err != nil || !ok {
				ledger.logger.Debug("dropping event with bad signature", zap.String("id", ev.ID))
				continue
			}
			all = append(all, ev)
		}
	}
	return Reduce(all), nil
}

// Get fetches the current view of a single intention.
func (ledger *Ledger) Get(ctx context.Context, dTag string) (Intention, bool, error) {
	intentions, err := ledger.FetchAll(ctx)
	if err != nil {
		return Intention{}, false, err
	}
	for _, intention := range intentions {
		if intention.DTag == dTag {
			return intention, true, nil
		}
	}
	return Intention{}, false, nil
}

func (ledger *Ledger) signedEvent(kind int, content any, tags nostr.Tags) (nostr.Event, error) {
	body, err := json.Marshal(content)
	if err != nil {
		return nostr.Event{}, err
	}
	ev := nostr.Event{
		Kind:      kind,
		CreatedAt: nostr.Now(),
		Tags:      tags,
		Content:   string(body),
	}
	if err := ledger.identity.Sign(&ev); err != nil {
		return nostr.Event{}, fmt.Errorf("failed to sign event: %w", err)
	}
	return ev, nil
}

func generateDTag(posterPubkey string, params IntentionParams) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate dTag nonce: %w", err)
	}
	seed := fmt.Sprintf("%s-%s-%s-%s-%d-%x",
		posterPubkey, params.WantedAsset, params.AmountBNB, params.AmountSats,
		time.Now().UnixNano(), nonce)
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:]), nil
}
