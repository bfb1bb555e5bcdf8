package commands

import (
	"fmt"

	"github.com/lnswapd/swapd/rpcclient"
	"github.com/spf13/cobra"
)

func Accept(rpcClient rpcclient.Client) *cobra.Command {
	var dTag string

	var cmd = &cobra.Command{
		Use:   "accept",
		Short: "Accept an open swap proposal",
		Run: func(c *cobra.Command, args []string) {
			if _, err := rpcClient.AcceptSwap(rpcclient.RequestDTag{DTag: dTag}); err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}
			fmt.Printf("successfully accepted swap %s\n", dTag)
		},
	}

	cmd.Flags().StringVar(&dTag, "dtag", "", "Identifier of the swap to accept")
	cmd.MarkFlagRequired("dtag")
	return cmd
}
