package intent

import (
	"strings"

	"github.com/nbd-wtf/go-nostr"
)

// Event kinds used by the negotiation protocol. Intentions are NIP-33
// parameterized replaceable events owned by the poster; acceptances and
// invoice publications are separate kinds so either party can append them.
const (
	KindIntention  = 30079
	KindAcceptance = 30080
	KindInvoice    = 30081
)

// DefaultTopic is the 't' tag all swap events are filtered by.
const DefaultTopic = "tap-bnb-swap"

// Derived intention statuses.
const (
	StatusOpen         = "open"
	StatusAccepted     = "accepted"
	StatusInvoiceReady = "invoice_ready"
)

// IntentionContent is the JSON body of a kind 30079 event.
type IntentionContent struct {
	DTag             string `json:"dTag"`
	PosterPubkey     string `json:"posterPubkey"`
	PosterEvmAddress string `json:"posterEvmAddress"`
	Status           string `json:"status"`
	WantedAsset      string `json:"wantedAsset"`
	AmountBNB        string `json:"amountBNB"`
	AmountSats       string `json:"amountSats"`
	PaymentRequest   string `json:"paymentRequest"`
	PaymentHash      string `json:"paymentHash"`
	ContractAddress  string `json:"contractAddress"`
	Timelock         *int64 `json:"timelock"`
}

// AcceptanceContent is the JSON body of a kind 30080 event.
type AcceptanceContent struct {
	DTag               string `json:"dTag"`
	IntentionID        string `json:"intentionId"`
	Status             string `json:"status"`
	PosterPubkey       string `json:"posterPubkey"`
	AccepterPubkey     string `json:"accepterPubkey"`
	AccepterEvmAddress string `json:"accepterEvmAddress"`
	AcceptedAt         int64  `json:"acceptedAt"`
}

// InvoiceContent is the JSON body of a kind 30081 event.
type InvoiceContent struct {
	DTag                       string `json:"dTag"`
	IntentionID                string `json:"intentionId"`
	Status                     string `json:"status"`
	PosterPubkey               string `json:"posterPubkey"`
	InvoicePublisherPubkey     string `json:"invoicePublisherPubkey"`
	InvoicePublisherEvmAddress string `json:"invoicePublisherEvmAddress"`
	PaymentRequest             string `json:"paymentRequest"`
	PaymentHash                string `json:"paymentHash"`
	PublishedAt                int64  `json:"publishedAt"`
}

// ARef builds the NIP-33 'a' reference pointing back at an intention.
func ARef(posterPubkey, dTag string) string {
	return "30079:" + posterPubkey + ":" + dTag
}

// DTagFromARef extracts the dTag portion of an 'a' reference. The dTag may
// itself contain colons.
func DTagFromARef(aRef string) string {
	parts := strings.SplitN(aRef, ":", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

func tagValue(tags nostr.Tags, key string) string {
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			return tag[1]
		}
	}
	return ""
}

// eventDTag resolves the correlation key of an acceptance or invoice event,
// preferring the content body, then the 'd' tag, then the 'a' reference.
func eventDTag(contentDTag string, tags nostr.Tags) string {
	if contentDTag != "" {
		return contentDTag
	}
	if d := tagValue(tags, "d"); d != "" {
		return d
	}
	return DTagFromARef(tagValue(tags, "a"))
}
