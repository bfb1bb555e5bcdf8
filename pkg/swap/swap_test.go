package swap_test

import (
	"github.com/lnswapd/swapd/pkg/swap"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Role mapping", func() {
	assets := []swap.Asset{swap.AssetNative, swap.AssetLightning}
	roles := []swap.Role{swap.RoleLocker, swap.RoleInvoicePublisher, swap.RoleClaimer}

	Context("when resolving roles for every asset direction", func() {
		It("should map every (asset, role) pair to exactly one participant", func() {
			for _, asset := range assets {
				for _, role := range roles {
					p := swap.ParticipantFor(asset, role)
					Expect(p == swap.Poster || p == swap.Accepter).Should(BeTrue())
				}
			}
		})

		It("should assign the locker and the invoice publisher to the same party", func() {
			for _, asset := range assets {
				Expect(swap.ParticipantFor(asset, swap.RoleLocker)).
					Should(Equal(swap.ParticipantFor(asset, swap.RoleInvoicePublisher)))
			}
		})

		It("should always make the claimer the locker's counterparty", func() {
			for _, asset := range assets {
				locker := swap.ParticipantFor(asset, swap.RoleLocker)
				claimer := swap.ParticipantFor(asset, swap.RoleClaimer)
				Expect(claimer).ShouldNot(Equal(locker))
			}
		})

		It("should make the accepter lock when the poster wants the native coin", func() {
			Expect(swap.ParticipantFor(swap.AssetNative, swap.RoleLocker)).Should(Equal(swap.Accepter))
			Expect(swap.ParticipantFor(swap.AssetNative, swap.RoleClaimer)).Should(Equal(swap.Poster))
		})

		It("should make the poster lock when the poster wants sats", func() {
			Expect(swap.ParticipantFor(swap.AssetLightning, swap.RoleLocker)).Should(Equal(swap.Poster))
			Expect(swap.ParticipantFor(swap.AssetLightning, swap.RoleClaimer)).Should(Equal(swap.Accepter))
		})
	})

	Context("when checking a single participant", func() {
		It("should agree with ParticipantFor", func() {
			for _, asset := range assets {
				for _, role := range roles {
					for _, p := range []swap.Participant{swap.Poster, swap.Accepter} {
						Expect(swap.HasRole(asset, p, role)).
							Should(Equal(swap.ParticipantFor(asset, role) == p))
					}
				}
			}
		})
	})
})

var _ = Describe("State", func() {
	It("should only treat settled and refunded as terminal", func() {
		Expect(swap.StateSettled.Terminal()).Should(BeTrue())
		Expect(swap.StateRefunded.Terminal()).Should(BeTrue())
		for _, s := range []swap.State{swap.StateCreated, swap.StateAccepted, swap.StateInvoiceReady, swap.StateLocked} {
			Expect(s.Terminal()).Should(BeFalse())
		}
	})

	It("should render reducer-compatible status strings", func() {
		Expect(swap.StateInvoiceReady.String()).Should(Equal("invoice_ready"))
		Expect(swap.StateAccepted.String()).Should(Equal("accepted"))
	})
})
