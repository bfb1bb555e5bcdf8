package util_test

import (
	"path/filepath"

	"github.com/lnswapd/swapd/pkg/util"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	valid := func() util.Config {
		return util.Config{
			Mnemonic:    "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
			EthURL:      "http://localhost:8545",
			ChainID:     31337,
			SwapAddress: "0x0000000000000000000000000000000000000001",
			LNDHost:     "localhost:10009",
			Relays:      []string{"wss://relay.damus.io"},
		}
	}

	Context("validation", func() {
		It("should accept a complete config", func() {
			Expect(valid().Validate()).To(BeNil())
		})

		It("should reject missing required fields", func() {
			config := valid()
			config.Mnemonic = ""
			Expect(config.Validate()).ShouldNot(BeNil())

			config = valid()
			config.EthURL = ""
			Expect(config.Validate()).ShouldNot(BeNil())

			config = valid()
			config.ChainID = 0
			Expect(config.Validate()).ShouldNot(BeNil())

			config = valid()
			config.Relays = nil
			Expect(config.Validate()).ShouldNot(BeNil())
		})
	})

	Context("loading from disk", func() {
		It("should round-trip through WriteConfig", func() {
			path := filepath.Join(GinkgoT().TempDir(), "config.json")
			Expect(util.WriteConfig(path, valid())).To(BeNil())

			loaded, err := util.LoadConfig(path)
			Expect(err).To(BeNil())
			Expect(loaded).Should(Equal(valid()))
		})

		It("should fail on a missing file", func() {
			_, err := util.LoadConfig(filepath.Join(GinkgoT().TempDir(), "nope.json"))
			Expect(err).ShouldNot(BeNil())
		})

		It("should let the environment override secrets", func() {
			path := filepath.Join(GinkgoT().TempDir(), "config.json")
			config := valid()
			config.RPCPassword = "from-file"
			Expect(util.WriteConfig(path, config)).To(BeNil())

			GinkgoT().Setenv("SWAPD_RPC_PASSWORD", "from-env")
			loaded, err := util.LoadConfig(path)
			Expect(err).To(BeNil())
			Expect(loaded.RPCPassword).Should(Equal("from-env"))
		})
	})
})
