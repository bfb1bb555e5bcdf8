package commands

import (
	"encoding/json"
	"fmt"

	"github.com/lnswapd/swapd/rpcclient"
	"github.com/spf13/cobra"
)

// txCommand builds a command for the operations that submit a contract
// transaction and report its hash.
func txCommand(use, short string, op func(rpcclient.RequestDTag) (json.RawMessage, error)) *cobra.Command {
	var dTag string

	var cmd = &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(c *cobra.Command, args []string) {
			resp, err := op(rpcclient.RequestDTag{DTag: dTag})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			var result struct {
				TxHash string `json:"txHash"`
			}
			if err := json.Unmarshal(resp, &result); err != nil {
				cobra.CheckErr(fmt.Errorf("failed to unmarshal response: %w", err))
			}
			fmt.Printf("submitted %s for swap %s in tx %s\n", use, dTag, result.TxHash)
		},
	}

	cmd.Flags().StringVar(&dTag, "dtag", "", "Identifier of the swap")
	cmd.MarkFlagRequired("dtag")
	return cmd
}

func Lock(rpcClient rpcclient.Client) *cobra.Command {
	return txCommand("lock", "Lock funds in the swap contract", rpcClient.LockFunds)
}

func Claim(rpcClient rpcclient.Client) *cobra.Command {
	return txCommand("claim", "Pay the invoice and claim the locked funds", rpcClient.ClaimFunds)
}

func Refund(rpcClient rpcclient.Client) *cobra.Command {
	return txCommand("refund", "Refund locked funds after timelock expiry", rpcClient.RefundFunds)
}
