package commands

import (
	"encoding/json"
	"fmt"

	"github.com/lnswapd/swapd/rpcclient"
	"github.com/spf13/cobra"
)

func List(rpcClient rpcclient.Client) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "list",
		Short: "List swap intentions seen on the relays",
		Run: func(c *cobra.Command, args []string) {
			resp, err := rpcClient.ListIntentions()
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			var intentions []struct {
				DTag        string `json:"dTag"`
				Status      string `json:"status"`
				WantedAsset string `json:"wantedAsset"`
				AmountBNB   string `json:"amountBNB"`
				AmountSats  string `json:"amountSats"`
			}
			if err := json.Unmarshal(resp, &intentions); err != nil {
				cobra.CheckErr(fmt.Errorf("failed to unmarshal response: %w", err))
			}
			if len(intentions) == 0 {
				fmt.Println("no intentions found")
				return
			}
			for _, intention := range intentions {
				fmt.Printf("%s  %-13s  wants %s  %s BNB / %s sats\n",
					intention.DTag, intention.Status, intention.WantedAsset,
					intention.AmountBNB, intention.AmountSats)
			}
		},
	}
	return cmd
}

func Status(rpcClient rpcclient.Client) *cobra.Command {
	var dTag string

	var cmd = &cobra.Command{
		Use:   "status",
		Short: "Show the derived state of a swap",
		Run: func(c *cobra.Command, args []string) {
			resp, err := rpcClient.SwapStatus(rpcclient.RequestDTag{DTag: dTag})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			var pretty json.RawMessage = resp
			out, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to render response: %w", err))
			}
			fmt.Println(string(out))
		},
	}

	cmd.Flags().StringVar(&dTag, "dtag", "", "Identifier of the swap")
	cmd.MarkFlagRequired("dtag")
	return cmd
}
