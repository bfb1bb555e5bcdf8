package swapd_test

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lnswapd/swapd/pkg/intent"
	"github.com/lnswapd/swapd/pkg/mock"
	"github.com/lnswapd/swapd/pkg/store"
	"github.com/lnswapd/swapd/pkg/swap"
	"github.com/lnswapd/swapd/pkg/swap/ethswap"
	"github.com/lnswapd/swapd/pkg/swapd"
	"github.com/lnswapd/swapd/pkg/util"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type party struct {
	orch      *swapd.Orchestrator
	ledger    *intent.Ledger
	escrow    *mock.Escrow
	lightning *mock.Lightning
	journal   store.Store
	identity  intent.Identity
	logger    *zap.Logger
}

type harness struct {
	relay   *mock.Relay
	chain   *mock.EscrowBackend
	network *mock.LightningNetwork
}

func newHarness() *harness {
	return &harness{
		relay:   mock.NewRelay(),
		chain:   mock.NewEscrowBackend(),
		network: mock.NewLightningNetwork(),
	}
}

func (h *harness) newParty(addr string, config swapd.Config) *party {
	identity, err := intent.RandomIdentity()
	Expect(err).To(BeNil())

	log := zap.NewNop()
	ledger := intent.NewLedger(log, h.relay, identity, "")
	escrow := mock.NewEscrow(h.chain, common.HexToAddress(addr))
	lightning := mock.NewLightning(h.network)

	db, err := gorm.Open(sqlite.Open(filepath.Join(GinkgoT().TempDir(), "journal.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	Expect(err).To(BeNil())
	journal, err := store.NewStore(db)
	Expect(err).To(BeNil())

	return &party{
		orch:      swapd.NewOrchestrator(log, config, escrow, lightning, ledger, journal),
		ledger:    ledger,
		escrow:    escrow,
		lightning: lightning,
		journal:   journal,
		identity:  identity,
		logger:    log,
	}
}

var _ = Describe("Orchestrating a swap", func() {
	var (
		h        *harness
		poster   *party
		accepter *party
	)

	BeforeEach(func() {
		h = newHarness()
		config := swapd.DefaultConfig()
		poster = h.newParty("0x0000000000000000000000000000000000000a11", config)
		accepter = h.newParty("0x0000000000000000000000000000000000000b0b", config)
	})

	Context("poster wants the on-chain asset", func() {
		It("should settle end to end", func(ctx context.Context) {
			By("Poster proposes")
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())

			By("Accepter accepts")
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())

			By("Accepter publishes the invoice, being the locker")
			invoice, err := accepter.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(invoice.PaymentRequest).ShouldNot(BeEmpty())

			By("Accepter locks funds under the invoice hash")
			lockTx, err := accepter.orch.Lock(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(lockTx).ShouldNot(BeEmpty())

			status, err := poster.orch.Status(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(status.State).Should(Equal(swap.StateLocked))

			By("Poster pays the invoice and claims")
			claimTx, err := poster.orch.Claim(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(claimTx).ShouldNot(BeEmpty())

			By("Both parties derive the settled state")
			for _, p := range []*party{poster, accepter} {
				status, err := p.orch.Status(ctx, intention.DTag)
				Expect(err).To(BeNil())
				Expect(status.State).Should(Equal(swap.StateSettled))
				Expect(status.Escrow.Claimed).Should(BeTrue())
			}

			By("The revealed secret hashes to the payment hash")
			secret, err := poster.orch.Secret(ctx, util.HashToHex(invoice.PaymentHash))
			Expect(err).To(BeNil())
			parsed, err := util.ParseHash(secret)
			Expect(err).To(BeNil())
			Expect(sha256.Sum256(parsed[:])).Should(Equal(invoice.PaymentHash))
		})
	})

	Context("poster wants the off-chain asset", func() {
		It("should assign the mirrored roles and settle", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetLightning, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())

			By("The accepter cannot publish the invoice this time")
			_, err = accepter.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrRoleMismatch))

			By("Poster publishes the invoice and locks")
			_, err = poster.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).To(BeNil())
			_, err = poster.orch.Lock(ctx, intention.DTag)
			Expect(err).To(BeNil())

			By("Accepter claims")
			_, err = accepter.orch.Claim(ctx, intention.DTag)
			Expect(err).To(BeNil())

			status, err := accepter.orch.Status(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(status.State).Should(Equal(swap.StateSettled))
		})
	})

	Context("nobody claims before the timelock", func() {
		It("should let the locker refund", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())
			invoice, err := accepter.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).To(BeNil())
			_, err = accepter.orch.Lock(ctx, intention.DTag)
			Expect(err).To(BeNil())

			By("Refund before expiry fails")
			_, err = accepter.orch.Refund(ctx, intention.DTag)
			Expect(err).ShouldNot(BeNil())

			By("Fast-forward the chain clock past the timelock")
			h.chain.Now = func() int64 { return time.Now().Add(3 * time.Hour).Unix() }

			By("The poster cannot refund, not being the locker")
			_, err = poster.orch.Refund(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrRoleMismatch))

			refundTx, err := accepter.orch.Refund(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(refundTx).ShouldNot(BeEmpty())

			status, err := poster.orch.Status(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(status.State).Should(Equal(swap.StateRefunded))

			By("A claim after the refund fails before the invoice is paid")
			_, err = poster.orch.Claim(ctx, intention.DTag)
			Expect(err).Should(MatchError(ethswap.ErrAlreadyRefunded))
			settled, _, err := poster.lightning.Settled(ctx, invoice.PaymentHash)
			Expect(err).To(BeNil())
			Expect(settled).Should(BeFalse())
		})
	})

	Context("protocol violations", func() {
		It("should reject accepting one's own intention", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(poster.orch.Accept(ctx, intention.DTag)).Should(MatchError(swapd.ErrSelfAcceptance))
		})

		It("should allow self-acceptance with the test override", func(ctx context.Context) {
			config := swapd.DefaultConfig()
			config.AllowSelfAccept = true
			loner := h.newParty("0x0000000000000000000000000000000000000ee1", config)

			intention, err := loner.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(loner.orch.Accept(ctx, intention.DTag)).To(BeNil())
		})

		It("should reject operations out of order", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())

			_, err = accepter.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrNotReady))
			_, err = accepter.orch.Lock(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrNotReady))
			_, err = poster.orch.Claim(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrNotReady))
		})

		It("should reject a claim before funds are locked", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())
			_, err = accepter.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).To(BeNil())

			_, err = poster.orch.Claim(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrNotReady))
		})

		It("should reject a stranger driving the swap", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())

			stranger := h.newParty("0x0000000000000000000000000000000000000bad", swapd.DefaultConfig())
			_, err = stranger.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrNotParticipant))
		})

		It("should reject an unknown dTag", func(ctx context.Context) {
			Expect(accepter.orch.Accept(ctx, "missing")).Should(MatchError(swapd.ErrUnknownIntention))
		})

		It("should refuse to pay an invoice that inflates the agreed amount", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())

			By("The accepter publishes an invoice asking for more sats than agreed")
			inflated, err := accepter.lightning.CreateInvoice(ctx, nil, 60000, "")
			Expect(err).To(BeNil())
			current, found, err := accepter.ledger.Get(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(found).Should(BeTrue())
			_, err = accepter.ledger.PublishInvoice(ctx, current, intent.InvoiceData{
				PaymentRequest: inflated.PaymentRequest,
				PaymentHash:    util.HashToHex(inflated.PaymentHash),
			}, accepter.escrow.Address().Hex())
			Expect(err).To(BeNil())

			_, err = accepter.orch.Lock(ctx, intention.DTag)
			Expect(err).To(BeNil())

			By("The poster rejects the claim without paying")
			_, err = poster.orch.Claim(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrAmountMismatch))
			settled, _, err := poster.lightning.Settled(ctx, inflated.PaymentHash)
			Expect(err).To(BeNil())
			Expect(settled).Should(BeFalse())
		})
	})

	Context("acceptance race", func() {
		It("should follow the latest acceptance", func(ctx context.Context) {
			intention, err := poster.orch.Propose(ctx, swap.AssetNative, "0.5", "50000")
			Expect(err).To(BeNil())

			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())

			late := h.newParty("0x0000000000000000000000000000000000000ca1", swapd.DefaultConfig())
			current, found, err := late.ledger.Get(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(found).Should(BeTrue())
			_, err = late.ledger.PublishAcceptance(ctx, current, "0xca1")
			Expect(err).To(BeNil())

			merged, found, err := poster.ledger.Get(ctx, intention.DTag)
			Expect(err).To(BeNil())
			Expect(found).Should(BeTrue())
			Expect(merged.AcceptedByPubkey).Should(Equal(late.identity.PublicKey))

			By("The displaced accepter can no longer act")
			_, err = accepter.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).Should(MatchError(swapd.ErrNotParticipant))
		})
	})

	Context("background reconciliation", func() {
		It("should journal the settlement observed on chain", func(ctx context.Context) {
			config := swapd.DefaultConfig()
			config.ReconcileInterval = 20 * time.Millisecond
			locker := h.newParty("0x0000000000000000000000000000000000000fa5", config)

			intention, err := locker.orch.Propose(ctx, swap.AssetLightning, "0.5", "50000")
			Expect(err).To(BeNil())
			Expect(accepter.orch.Accept(ctx, intention.DTag)).To(BeNil())
			_, err = locker.orch.PublishInvoice(ctx, intention.DTag)
			Expect(err).To(BeNil())
			_, err = locker.orch.Lock(ctx, intention.DTag)
			Expect(err).To(BeNil())

			locker.orch.Start()
			defer locker.orch.Stop()

			_, err = accepter.orch.Claim(ctx, intention.DTag)
			Expect(err).To(BeNil())

			Eventually(func() store.Stage {
				journaled, err := locker.journal.SwapByDTag(intention.DTag)
				if err != nil {
					return store.Unknown
				}
				return journaled.Stage
			}, "2s", "20ms").Should(Equal(store.Settled))
		})
	})
})
