package commands

import (
	"encoding/json"
	"fmt"

	"github.com/lnswapd/swapd/rpcclient"
	"github.com/spf13/cobra"
)

func Invoice(rpcClient rpcclient.Client) *cobra.Command {
	var dTag string

	var cmd = &cobra.Command{
		Use:   "invoice",
		Short: "Create and publish the swap invoice",
		Run: func(c *cobra.Command, args []string) {
			resp, err := rpcClient.PublishInvoice(rpcclient.RequestDTag{DTag: dTag})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			var published struct {
				PaymentRequest string `json:"paymentRequest"`
				PaymentHash    string `json:"paymentHash"`
			}
			if err := json.Unmarshal(resp, &published); err != nil {
				cobra.CheckErr(fmt.Errorf("failed to unmarshal response: %w", err))
			}
			fmt.Printf("published invoice for swap %s\npayment hash: %s\npayment request: %s\n",
				dTag, published.PaymentHash, published.PaymentRequest)
		},
	}

	cmd.Flags().StringVar(&dTag, "dtag", "", "Identifier of the swap")
	cmd.MarkFlagRequired("dtag")
	return cmd
}
