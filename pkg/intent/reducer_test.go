package intent_test

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/lnswapd/swapd/pkg/intent"
	"github.com/nbd-wtf/go-nostr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func intentionEvent(dTag, poster string, createdAt int64) *nostr.Event {
	content, err := json.Marshal(intent.IntentionContent{
		DTag:             dTag,
		PosterPubkey:     poster,
		PosterEvmAddress: "0xposter",
		Status:           intent.StatusOpen,
		WantedAsset:      "BNB",
		AmountBNB:        "0.1",
		AmountSats:       "10000",
	})
	Expect(err).To(BeNil())
	return &nostr.Event{
		ID:        fmt.Sprintf("intention-%v-%v", dTag, createdAt),
		Kind:      intent.KindIntention,
		CreatedAt: nostr.Timestamp(createdAt),
		PubKey:    poster,
		Tags:      nostr.Tags{{"d", dTag}, {"t", intent.DefaultTopic}},
		Content:   string(content),
	}
}

func acceptanceEvent(dTag, poster, accepter string, createdAt int64) *nostr.Event {
	content, err := json.Marshal(intent.AcceptanceContent{
		DTag:           dTag,
		IntentionID:    "intention-" + dTag,
		Status:         intent.StatusAccepted,
		PosterPubkey:   poster,
		AccepterPubkey: accepter,
		AcceptedAt:     createdAt,
	})
	Expect(err).To(BeNil())
	return &nostr.Event{
		ID:        fmt.Sprintf("accept-%v-%v-%v", dTag, accepter, createdAt),
		Kind:      intent.KindAcceptance,
		CreatedAt: nostr.Timestamp(createdAt),
		PubKey:    accepter,
		Tags:      nostr.Tags{{"a", intent.ARef(poster, dTag)}, {"t", intent.DefaultTopic}},
		Content:   string(content),
	}
}

func invoiceEvent(dTag, poster, publisher, paymentHash string, createdAt int64) *nostr.Event {
	content, err := json.Marshal(intent.InvoiceContent{
		DTag:                   dTag,
		IntentionID:            "intention-" + dTag,
		Status:                 intent.StatusInvoiceReady,
		PosterPubkey:           poster,
		InvoicePublisherPubkey: publisher,
		PaymentRequest:         "lnbc1" + paymentHash,
		PaymentHash:            paymentHash,
		PublishedAt:            createdAt,
	})
	Expect(err).To(BeNil())
	return &nostr.Event{
		ID:        fmt.Sprintf("invoice-%v-%v", dTag, createdAt),
		Kind:      intent.KindInvoice,
		CreatedAt: nostr.Timestamp(createdAt),
		PubKey:    publisher,
		Tags:      nostr.Tags{{"d", dTag}, {"t", intent.DefaultTopic}, {"h", paymentHash}},
		Content:   string(content),
	}
}

var _ = Describe("Reducing event streams", func() {
	It("should derive status from the merged event kinds", func() {
		events := []*nostr.Event{
			intentionEvent("swap1", "alice", 100),
			acceptanceEvent("swap1", "alice", "bob", 110),
		}
		intentions := intent.Reduce(events)
		Expect(intentions).Should(HaveLen(1))
		Expect(intentions[0].Status).Should(Equal(intent.StatusAccepted))
		Expect(intentions[0].AcceptedByPubkey).Should(Equal("bob"))

		events = append(events, invoiceEvent("swap1", "alice", "bob", "deadbeef", 120))
		intentions = intent.Reduce(events)
		Expect(intentions[0].Status).Should(Equal(intent.StatusInvoiceReady))
		Expect(intentions[0].PaymentHash).Should(Equal("deadbeef"))
		Expect(intentions[0].InvoiceReady()).Should(BeTrue())
	})

	It("should only keep the latest intention per dTag", func() {
		events := []*nostr.Event{
			intentionEvent("swap1", "alice", 100),
			intentionEvent("swap1", "alice", 200),
		}
		intentions := intent.Reduce(events)
		Expect(intentions).Should(HaveLen(1))
		Expect(intentions[0].CreatedAt).Should(Equal(int64(200)))
	})

	It("should resolve an acceptance race in favour of the later accepter", func() {
		events := []*nostr.Event{
			intentionEvent("swap1", "alice", 100),
			acceptanceEvent("swap1", "alice", "bob", 110),
			acceptanceEvent("swap1", "alice", "carol", 120),
		}
		intentions := intent.Reduce(events)
		Expect(intentions[0].AcceptedByPubkey).Should(Equal("carol"))
	})

	It("should discard events whose dTag matches no intention", func() {
		events := []*nostr.Event{
			acceptanceEvent("ghost", "alice", "bob", 110),
			invoiceEvent("ghost", "alice", "bob", "deadbeef", 120),
		}
		Expect(intent.Reduce(events)).Should(BeEmpty())
	})

	It("should ignore acceptances older than the intention they reference", func() {
		events := []*nostr.Event{
			intentionEvent("swap1", "alice", 200),
			acceptanceEvent("swap1", "alice", "bob", 150),
		}
		intentions := intent.Reduce(events)
		Expect(intentions[0].Status).Should(Equal(intent.StatusOpen))
		Expect(intentions[0].Accepted()).Should(BeFalse())
	})

	It("should produce the same state regardless of arrival order", func() {
		events := []*nostr.Event{
			intentionEvent("swap1", "alice", 100),
			intentionEvent("swap2", "dave", 105),
			acceptanceEvent("swap1", "alice", "bob", 110),
			acceptanceEvent("swap1", "alice", "carol", 120),
			invoiceEvent("swap1", "alice", "carol", "deadbeef", 130),
			acceptanceEvent("swap2", "dave", "erin", 140),
		}
		want := intent.Reduce(events)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 20; i++ {
			shuffled := make([]*nostr.Event, len(events))
			copy(shuffled, events)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			Expect(intent.Reduce(shuffled)).Should(Equal(want))
		}
	})

	It("should sort intentions newest first", func() {
		events := []*nostr.Event{
			intentionEvent("old", "alice", 100),
			intentionEvent("new", "bob", 200),
		}
		intentions := intent.Reduce(events)
		Expect(intentions[0].DTag).Should(Equal("new"))
		Expect(intentions[1].DTag).Should(Equal("old"))
	})

	It("should let equal timestamps favour the later processed event", func() {
		events := []*nostr.Event{
			intentionEvent("swap1", "alice", 100),
			acceptanceEvent("swap1", "alice", "bob", 110),
			acceptanceEvent("swap1", "alice", "carol", 110),
		}
		intentions := intent.Reduce(events)
		Expect(intentions[0].AcceptedByPubkey).Should(Equal("carol"))
	})

	It("should skip events with malformed content", func() {
		bad := intentionEvent("swap1", "alice", 100)
		bad.Content = "{not json"
		Expect(intent.Reduce([]*nostr.Event{bad})).Should(BeEmpty())
	})
})
