package ethswap_test

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/lnswapd/swapd/pkg/swap/ethswap"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func randomSecret() []byte {
	secret := make([]byte, 32)
	_, err := rand.Read(secret)
	Expect(err).To(BeNil())
	return secret
}

func walletFromEnv(name string, client *ethclient.Client, options ethswap.Options) ethswap.Wallet {
	keyStr := strings.TrimPrefix(os.Getenv(name), "0x")
	keyBytes, err := hex.DecodeString(keyStr)
	Expect(err).To(BeNil())
	key, err := crypto.ToECDSA(keyBytes)
	Expect(err).To(BeNil())
	wallet, err := ethswap.NewWallet(key, client, options)
	Expect(err).To(BeNil())
	return wallet
}

var _ = Describe("Swap validation", func() {
	var options ethswap.Options

	BeforeEach(func() {
		options = ethswap.NewOptions(big.NewInt(56), common.HexToAddress("0x8Ba1f109551bD432803012645Ac136ddd64DBa72"))
	})

	It("should reject a zero amount", func() {
		_, err := ethswap.NewSwap([32]byte{1}, big.NewInt(0), big.NewInt(time.Now().Unix()), options)
		Expect(err).ShouldNot(BeNil())
	})

	It("should reject a missing timelock", func() {
		_, err := ethswap.NewSwap([32]byte{1}, big.NewInt(1e18), nil, options)
		Expect(err).ShouldNot(BeNil())
	})

	It("should reject options without a contract address", func() {
		bad := ethswap.NewOptions(big.NewInt(56), common.Address{})
		_, err := ethswap.NewSwap([32]byte{1}, big.NewInt(1e18), big.NewInt(time.Now().Unix()), bad)
		Expect(err).ShouldNot(BeNil())
	})

	It("should reject options without a chain id", func() {
		bad := ethswap.NewOptions(nil, common.HexToAddress("0x8Ba1f109551bD432803012645Ac136ddd64DBa72"))
		Expect(bad.Validate()).ShouldNot(BeNil())
	})
})

var _ = Describe("Escrow swap on chain", func() {
	Context("Alice locks funds and Bob claims with the secret", func() {
		It("should claim and recover the secret from the logs", func(ctx context.Context) {
			if ethURL == "" {
				Skip("SWAPD_ETH_URL is not set")
			}

			By("Initialise the client")
			client, err := ethclient.Dial(ethURL)
			Expect(err).To(BeNil())

			By("Initialise two wallets")
			options := ethswap.NewOptions(chainID, swapAddr)
			aliceWallet := walletFromEnv("SWAPD_ETH_KEY_1", client, options)
			bobWallet := walletFromEnv("SWAPD_ETH_KEY_2", client, options)

			By("Alice constructs a swap")
			amount := big.NewInt(1e18)
			secretBytes := randomSecret()
			var secret [32]byte
			copy(secret[:], secretBytes)
			hashlock := sha256.Sum256(secretBytes)
			timelock := big.NewInt(time.Now().Add(time.Hour).Unix())
			swap, err := ethswap.NewSwap(hashlock, amount, timelock, options)
			Expect(err).To(BeNil())

			By("Check status")
			initiated, err := swap.Initiated(ctx, client)
			Expect(err).To(BeNil())
			Expect(initiated).Should(BeFalse())

			By("Alice initiates the swap")
			initTx, err := aliceWallet.Initiate(ctx, swap)
			Expect(err).To(BeNil())
			Expect(initTx).ShouldNot(BeEmpty())
			time.Sleep(time.Second)

			initiated, err = swap.Initiated(ctx, client)
			Expect(err).To(BeNil())
			Expect(initiated).Should(BeTrue())

			By("Refund before expiry should fail")
			_, err = aliceWallet.Refund(ctx, swap)
			Expect(err).Should(MatchError(ethswap.ErrTimelockNotPassed))

			By("Bob claims with the secret")
			claimTx, err := bobWallet.Claim(ctx, swap, secret)
			Expect(err).To(BeNil())
			Expect(claimTx).ShouldNot(BeEmpty())
			time.Sleep(time.Second)

			By("The secret can be recovered from the claim log")
			claimed, revealed, err := swap.Claimed(ctx, client)
			Expect(err).To(BeNil())
			Expect(claimed).Should(BeTrue())
			Expect(revealed).Should(Equal(secret))

			By("A second claim should fail")
			_, err = bobWallet.Claim(ctx, swap, secret)
			Expect(err).Should(MatchError(ethswap.ErrAlreadyClaimed))
		})
	})

	Context("nobody claims before the timelock", func() {
		It("should let Alice refund after expiry", func(ctx context.Context) {
			if ethURL == "" {
				Skip("SWAPD_ETH_URL is not set")
			}

			client, err := ethclient.Dial(ethURL)
			Expect(err).To(BeNil())
			options := ethswap.NewOptions(chainID, swapAddr)
			aliceWallet := walletFromEnv("SWAPD_ETH_KEY_1", client, options)
			bobWallet := walletFromEnv("SWAPD_ETH_KEY_2", client, options)

			By("Alice initiates a swap with a short timelock")
			secretBytes := randomSecret()
			hashlock := sha256.Sum256(secretBytes)
			timelock := big.NewInt(time.Now().Add(5 * time.Second).Unix())
			swap, err := ethswap.NewSwap(hashlock, big.NewInt(1e17), timelock, options)
			Expect(err).To(BeNil())
			_, err = aliceWallet.Initiate(ctx, swap)
			Expect(err).To(BeNil())

			By("Bob cannot refund someone else's swap")
			time.Sleep(6 * time.Second)
			_, err = bobWallet.Refund(ctx, swap)
			Expect(err).Should(MatchError(ethswap.ErrOnlySenderCanRefund))

			By("Alice refunds after the timelock passes")
			refundTx, err := aliceWallet.Refund(ctx, swap)
			Expect(err).To(BeNil())
			Expect(refundTx).ShouldNot(BeEmpty())
			time.Sleep(time.Second)

			refunded, err := swap.Refunded(ctx, client)
			Expect(err).To(BeNil())
			Expect(refunded).Should(BeTrue())

			By("A refunded swap cannot be claimed")
			var secret [32]byte
			copy(secret[:], secretBytes)
			_, err = bobWallet.Claim(ctx, swap, secret)
			Expect(err).Should(MatchError(ethswap.ErrAlreadyRefunded))
		})
	})
})
