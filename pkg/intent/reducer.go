package intent

import (
	"encoding/json"
	"sort"

	"github.com/nbd-wtf/go-nostr"
)

// Intention is a swap proposal reconstructed from the event streams. It is
// never stored anywhere authoritative, only rebuilt by Reduce.
type Intention struct {
	DTag      string
	ID        string
	CreatedAt int64

	PosterPubkey     string
	PosterEvmAddress string
	Status           string
	WantedAsset      string
	AmountBNB        string
	AmountSats       string
	ContractAddress  string
	Timelock         *int64

	AcceptedByPubkey   string
	AccepterEvmAddress string
	AcceptedAt         int64

	PaymentRequest             string
	PaymentHash                string
	InvoicePublisherPubkey     string
	InvoicePublisherEvmAddress string
	InvoicePublishedAt         int64
}

// Accepted reports whether an authoritative acceptance is merged in.
func (intention Intention) Accepted() bool {
	return intention.AcceptedByPubkey != ""
}

// InvoiceReady reports whether an invoice publication is merged in.
func (intention Intention) InvoiceReady() bool {
	return intention.PaymentHash != "" && intention.PaymentRequest != ""
}

type acceptance struct {
	createdAt int64
	pubkey    string
	address   string
}

type invoice struct {
	createdAt      int64
	paymentRequest string
	paymentHash    string
	pubkey         string
	address        string
}

// Reduce folds an unordered batch of swap events into the current intention
// set, newest first. The fold is keyed by dTag and commutative: for each
// event kind only the latest event counts, with equal timestamps resolved in
// favour of the later-processed event. Acceptances and invoices whose dTag
// matches no intention are dropped, as are acceptances older than the
// intention they reference.
func Reduce(events []*nostr.Event) []Intention {
	intentions := map[string]Intention{}
	acceptances := map[string]acceptance{}
	invoices := map[string]invoice{}

	for _, ev := range events {
		switch ev.Kind {
		case KindIntention:
			dTag := tagValue(ev.Tags, "d")
			if dTag == "" {
				continue
			}
			var content IntentionContent
			if err := json.Unmarshal([]byte(ev.Content), &content); err != nil {
				continue
			}
			if current, ok := intentions[dTag]; ok && int64(ev.CreatedAt) < current.CreatedAt {
				continue
			}
			status := content.Status
			if status == "" {
				status = StatusOpen
			}
			posterPubkey := content.PosterPubkey
			if posterPubkey == "" {
				posterPubkey = ev.PubKey
			}
			intentions[dTag] = Intention{
				DTag:             dTag,
				ID:               ev.ID,
				CreatedAt:        int64(ev.CreatedAt),
				PosterPubkey:     posterPubkey,
				PosterEvmAddress: content.PosterEvmAddress,
				Status:           status,
				WantedAsset:      content.WantedAsset,
				AmountBNB:        content.AmountBNB,
				AmountSats:       content.AmountSats,
				PaymentRequest:   content.PaymentRequest,
				PaymentHash:      content.PaymentHash,
				ContractAddress:  content.ContractAddress,
				Timelock:         content.Timelock,
			}

		case KindAcceptance:
			var content AcceptanceContent
			if err := json.Unmarshal([]byte(ev.Content), &content); err != nil {
				continue
			}
			dTag := eventDTag(content.DTag, ev.Tags)
			if dTag == "" {
				continue
			}
			if current, ok := acceptances[dTag]; ok && int64(ev.CreatedAt) < current.createdAt {
				continue
			}
			pubkey := content.AccepterPubkey
			if pubkey == "" {
				pubkey = ev.PubKey
			}
			acceptances[dTag] = acceptance{
				createdAt: int64(ev.CreatedAt),
				pubkey:    pubkey,
				address:   content.AccepterEvmAddress,
			}

		case KindInvoice:
			var content InvoiceContent
			if err := json.Unmarshal([]byte(ev.Content), &content); err != nil {
				continue
			}
			dTag := eventDTag(content.DTag, ev.Tags)
			if dTag == "" {
				continue
			}
			if current, ok := invoices[dTag]; ok && int64(ev.CreatedAt) < current.createdAt {
				continue
			}
			paymentHash := content.PaymentHash
			if paymentHash == "" {
				paymentHash = tagValue(ev.Tags, "h")
			}
			pubkey := content.InvoicePublisherPubkey
			if pubkey == "" {
				pubkey = ev.PubKey
			}
			invoices[dTag] = invoice{
				createdAt:      int64(ev.CreatedAt),
				paymentRequest: content.PaymentRequest,
				paymentHash:    paymentHash,
				pubkey:         pubkey,
				address:        content.InvoicePublisherEvmAddress,
			}
		}
	}

	merged := make([]Intention, 0, len(intentions))
	for dTag, intention := range intentions {
		if accepted, ok := acceptances[dTag]; ok && accepted.createdAt >= intention.CreatedAt {
			if intention.Status == StatusOpen {
				intention.Status = StatusAccepted
			}
			intention.AcceptedByPubkey = accepted.pubkey
			intention.AccepterEvmAddress = accepted.address
			intention.AcceptedAt = accepted.createdAt
		}
		if inv, ok := invoices[dTag]; ok {
			intention.Status = StatusInvoiceReady
			intention.PaymentRequest = inv.paymentRequest
			intention.PaymentHash = inv.paymentHash
			intention.InvoicePublisherPubkey = inv.pubkey
			intention.InvoicePublisherEvmAddress = inv.address
			intention.InvoicePublishedAt = inv.createdAt
		}
		merged = append(merged, intention)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt != merged[j].CreatedAt {
			return merged[i].CreatedAt > merged[j].CreatedAt
		}
		return merged[i].DTag < merged[j].DTag
	})
	return merged
}
