package cli

import (
	"github.com/lnswapd/swapd/cli/commands"
	"github.com/lnswapd/swapd/pkg/util"
	"github.com/lnswapd/swapd/rpcclient"
	"github.com/spf13/cobra"
)

func Run(version string) error {
	var cmd = &cobra.Command{
		Use:   "swapctl",
		Short: "Control a running swapd over its JSON-RPC api",
		Run: func(c *cobra.Command, args []string) {
			c.HelpFunc()(c, args)
		},
		Version:           version,
		DisableAutoGenTag: true,
	}

	config, err := util.LoadConfig(util.DefaultConfigPath())
	if err != nil {
		return err
	}
	addr := config.RPCAddr
	if addr == "" {
		addr = "localhost:8424"
	}
	rpcClient := rpcclient.NewClient(config.RPCUsername, config.RPCPassword, "http", addr)

	cmd.AddCommand(commands.Propose(rpcClient))
	cmd.AddCommand(commands.Accept(rpcClient))
	cmd.AddCommand(commands.Invoice(rpcClient))
	cmd.AddCommand(commands.Lock(rpcClient))
	cmd.AddCommand(commands.Claim(rpcClient))
	cmd.AddCommand(commands.Refund(rpcClient))
	cmd.AddCommand(commands.List(rpcClient))
	cmd.AddCommand(commands.Status(rpcClient))
	return cmd.Execute()
}
