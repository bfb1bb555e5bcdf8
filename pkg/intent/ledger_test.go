package intent_test

import (
	"context"

	"github.com/lnswapd/swapd/pkg/intent"
	"github.com/lnswapd/swapd/pkg/mock"
	"github.com/lnswapd/swapd/pkg/swap"
	"github.com/nbd-wtf/go-nostr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Publishing and fetching intentions", func() {
	var (
		relay  *mock.Relay
		poster *intent.Ledger
		taker  *intent.Ledger
	)

	BeforeEach(func() {
		relay = mock.NewRelay()
		logger := zap.NewNop()

		posterID, err := intent.RandomIdentity()
		Expect(err).To(BeNil())
		takerID, err := intent.RandomIdentity()
		Expect(err).To(BeNil())

		poster = intent.NewLedger(logger, relay, posterID, "")
		taker = intent.NewLedger(logger, relay, takerID, "")
	})

	It("should reconstruct the full negotiation from the relay", func(ctx context.Context) {
		published, err := poster.PublishIntention(ctx, intent.IntentionParams{
			WantedAsset:   swap.AssetNative,
			AmountBNB:     "0.1",
			AmountSats:    "10000",
			PosterAddress: "0xposter",
		})
		Expect(err).To(BeNil())
		Expect(published.DTag).ShouldNot(BeEmpty())
		Expect(published.Status).Should(Equal(intent.StatusOpen))

		intentions, err := taker.FetchAll(ctx)
		Expect(err).To(BeNil())
		Expect(intentions).Should(HaveLen(1))
		Expect(intentions[0].DTag).Should(Equal(published.DTag))
		Expect(intentions[0].PosterPubkey).Should(Equal(poster.Identity().PublicKey))

		_, err = taker.PublishAcceptance(ctx, intentions[0], "0xtaker")
		Expect(err).To(BeNil())

		current, found, err := poster.Get(ctx, published.DTag)
		Expect(err).To(BeNil())
		Expect(found).Should(BeTrue())
		Expect(current.Status).Should(Equal(intent.StatusAccepted))
		Expect(current.AcceptedByPubkey).Should(Equal(taker.Identity().PublicKey))

		_, err = taker.PublishInvoice(ctx, current, intent.InvoiceData{
			PaymentRequest: "lnbc1fakerequest",
			PaymentHash:    "deadbeef",
		}, "0xtaker")
		Expect(err).To(BeNil())

		current, found, err = poster.Get(ctx, published.DTag)
		Expect(err).To(BeNil())
		Expect(found).Should(BeTrue())
		Expect(current.Status).Should(Equal(intent.StatusInvoiceReady))
		Expect(current.PaymentHash).Should(Equal("deadbeef"))
		Expect(current.InvoicePublisherPubkey).Should(Equal(taker.Identity().PublicKey))
	})

	It("should refuse to publish without a signing identity", func(ctx context.Context) {
		anonymous := intent.NewLedger(zap.NewNop(), relay, intent.Identity{}, "")
		_, err := anonymous.PublishIntention(ctx, intent.IntentionParams{
			WantedAsset: swap.AssetNative,
			AmountBNB:   "0.1",
			AmountSats:  "10000",
		})
		Expect(err).Should(MatchError(intent.ErrNoIdentity))
	})

	It("should refuse an intention with a bad asset or missing amounts", func(ctx context.Context) {
		_, err := poster.PublishIntention(ctx, intent.IntentionParams{
			WantedAsset: swap.Asset("DOGE"),
			AmountBNB:   "0.1",
			AmountSats:  "10000",
		})
		Expect(err).ShouldNot(BeNil())

		_, err = poster.PublishIntention(ctx, intent.IntentionParams{
			WantedAsset: swap.AssetNative,
			AmountSats:  "10000",
		})
		Expect(err).ShouldNot(BeNil())
	})

	It("should refuse an invoice publication lacking request or hash", func(ctx context.Context) {
		published, err := poster.PublishIntention(ctx, intent.IntentionParams{
			WantedAsset: swap.AssetLightning,
			AmountBNB:   "0.1",
			AmountSats:  "10000",
		})
		Expect(err).To(BeNil())

		_, err = poster.PublishInvoice(ctx, published, intent.InvoiceData{PaymentHash: "deadbeef"}, "")
		Expect(err).ShouldNot(BeNil())
		_, err = poster.PublishInvoice(ctx, published, intent.InvoiceData{PaymentRequest: "lnbc1"}, "")
		Expect(err).ShouldNot(BeNil())
	})

	It("should drop events with invalid signatures", func(ctx context.Context) {
		forged := intentionEvent("forged", "mallory", 100)
		forged.Sig = "00"
		relay.Inject(*forged)

		intentions, err := poster.FetchAll(ctx)
		Expect(err).To(BeNil())
		Expect(intentions).Should(BeEmpty())
	})

	It("should surface a transport failure", func(ctx context.Context) {
		relay.FuncPublish = func(ctx context.Context, ev nostr.Event) error {
			return intent.ErrAllRelaysFailed
		}
		_, err := poster.PublishIntention(ctx, intent.IntentionParams{
			WantedAsset: swap.AssetNative,
			AmountBNB:   "0.1",
			AmountSats:  "10000",
		})
		Expect(err).Should(MatchError(intent.ErrAllRelaysFailed))
	})
})
