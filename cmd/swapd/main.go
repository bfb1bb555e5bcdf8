package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lnswapd/swapd/pkg/intent"
	"github.com/lnswapd/swapd/pkg/swapd"
	"github.com/lnswapd/swapd/pkg/util"
	"github.com/spf13/cobra"
)

var BinaryVersion = "undefined"

func main() {
	var cmd = &cobra.Command{
		Use:   "swapd",
		Short: "Atomic swap daemon bridging the chain, the payment network and the relays",
		Run: func(c *cobra.Command, args []string) {
			c.HelpFunc()(c, args)
		},
		Version:           BinaryVersion,
		DisableAutoGenTag: true,
	}
	cmd.AddCommand(initCmd())
	cmd.AddCommand(startCmd())
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a fresh config with a new mnemonic",
		Run: func(c *cobra.Command, args []string) {
			path := util.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				cobra.CheckErr(fmt.Errorf("config already exists at %v", path))
			}
			mnemonic, err := util.NewMnemonic()
			if err != nil {
				cobra.CheckErr(err)
			}
			config := util.Config{
				Mnemonic: mnemonic,
				ChainID:  56,
				Relays:   []string{"wss://relay.damus.io", "wss://nos.lol"},
				Topic:    intent.DefaultTopic,
				DB:       util.DefaultStorePath(),
				RPCAddr:  "localhost:8424",
			}
			if err := util.WriteConfig(path, config); err != nil {
				cobra.CheckErr(err)
			}
			fmt.Printf("wrote config to %v, fill in the node endpoints before starting\n", path)
		},
	}
}

func startCmd() *cobra.Command {
	var configPath string

	var cmd = &cobra.Command{
		Use:   "start",
		Short: "Start the daemon",
		Run: func(c *cobra.Command, args []string) {
			config, err := util.LoadConfig(configPath)
			if err != nil {
				cobra.CheckErr(err)
			}
			daemon, err := swapd.New(config)
			if err != nil {
				cobra.CheckErr(err)
			}
			go func() {
				sigs := make(chan os.Signal, 1)
				signal.Notify(sigs, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
				<-sigs
				daemon.Stop()
				os.Exit(0)
			}()
			if err := daemon.Start(); err != nil {
				cobra.CheckErr(err)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	return cmd
}
