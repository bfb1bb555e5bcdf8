package store_test

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lnswapd/swapd/pkg/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Swap journal", func() {
	var journal store.Store

	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "swapd.db")
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).To(BeNil())
		journal, err = store.NewStore(db)
		Expect(err).To(BeNil())
	})

	It("should journal a swap through its stages", func() {
		Expect(journal.PutSwap("swap1", "locker")).To(BeNil())

		swap, err := journal.SwapByDTag("swap1")
		Expect(err).To(BeNil())
		Expect(swap.Stage).Should(Equal(store.Created))
		Expect(swap.Role).Should(Equal("locker"))

		Expect(journal.UpdatePaymentHash("swap1", "deadbeef")).To(BeNil())
		Expect(journal.UpdateStage("swap1", store.InvoiceReady, nil)).To(BeNil())
		Expect(journal.UpdateTxHash("swap1", store.Lock, "0xabc")).To(BeNil())
		Expect(journal.UpdateStage("swap1", store.Locked, nil)).To(BeNil())

		swap, err = journal.SwapByPaymentHash("deadbeef")
		Expect(err).To(BeNil())
		Expect(swap.DTag).Should(Equal("swap1"))
		Expect(swap.Stage).Should(Equal(store.Locked))
		Expect(swap.LockTxHash).Should(Equal("0xabc"))
	})

	It("should store and return secrets by payment hash", func() {
		Expect(journal.PutSwap("swap1", "claimer")).To(BeNil())
		Expect(journal.UpdatePaymentHash("swap1", "deadbeef")).To(BeNil())
		Expect(journal.PutSecret("deadbeef", "cafebabe")).To(BeNil())

		secret, err := journal.Secret("deadbeef")
		Expect(err).To(BeNil())
		Expect(secret).Should(Equal("cafebabe"))
	})

	It("should record the last error alongside a failure stage", func() {
		Expect(journal.PutSwap("swap1", "locker")).To(BeNil())
		Expect(journal.UpdateStage("swap1", store.FailedToLock, errors.New("nonce too low"))).To(BeNil())

		swap, err := journal.SwapByDTag("swap1")
		Expect(err).To(BeNil())
		Expect(swap.Stage).Should(Equal(store.FailedToLock))
		Expect(swap.Error).Should(Equal("nonce too low"))
	})

	It("should reject a duplicate dTag", func() {
		Expect(journal.PutSwap("swap1", "locker")).To(BeNil())
		Expect(journal.PutSwap("swap1", "locker")).ShouldNot(BeNil())
	})

	It("should reject an unknown tx event", func() {
		Expect(journal.PutSwap("swap1", "locker")).To(BeNil())
		Expect(journal.UpdateTxHash("swap1", store.UnknownEvent, "0xabc")).ShouldNot(BeNil())
	})

	It("should list swaps newest first", func() {
		for i := 0; i < 3; i++ {
			Expect(journal.PutSwap(fmt.Sprintf("swap%v", i), "locker")).To(BeNil())
		}
		swaps, err := journal.Swaps()
		Expect(err).To(BeNil())
		Expect(swaps).Should(HaveLen(3))
	})
})
