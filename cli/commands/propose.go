package commands

import (
	"encoding/json"
	"fmt"

	"github.com/lnswapd/swapd/rpcclient"
	"github.com/spf13/cobra"
)

func Propose(rpcClient rpcclient.Client) *cobra.Command {
	var (
		wantedAsset string
		amountBNB   string
		amountSats  string
	)

	var cmd = &cobra.Command{
		Use:   "propose",
		Short: "Propose a new atomic swap",
		Run: func(c *cobra.Command, args []string) {
			resp, err := rpcClient.ProposeSwap(rpcclient.RequestPropose{
				WantedAsset: wantedAsset,
				AmountBNB:   amountBNB,
				AmountSats:  amountSats,
			})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			var intention struct {
				DTag string `json:"dTag"`
			}
			if err := json.Unmarshal(resp, &intention); err != nil {
				cobra.CheckErr(fmt.Errorf("failed to unmarshal response: %w", err))
			}
			fmt.Printf("successfully proposed swap %s\n", intention.DTag)
		},
	}

	cmd.Flags().StringVar(&wantedAsset, "wanted", "", "Asset to receive, BNB or TAPROOT_BNB")
	cmd.MarkFlagRequired("wanted")
	cmd.Flags().StringVar(&amountBNB, "amount-bnb", "", "On-chain amount, in BNB")
	cmd.MarkFlagRequired("amount-bnb")
	cmd.Flags().StringVar(&amountSats, "amount-sats", "", "Off-chain amount, in satoshis")
	cmd.MarkFlagRequired("amount-sats")
	return cmd
}
