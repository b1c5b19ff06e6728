package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

func Cmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "babel",
		Short: "Deploy, mint and claim Babel NFT collections.",
	}

	rootCmd.AddCommand(keysCmd())
	rootCmd.AddCommand(chainCmd())
	rootCmd.AddCommand(deployCmd())
	rootCmd.AddCommand(babelCmd())
	rootCmd.AddCommand(authMintCmd())
	rootCmd.AddCommand(merkleCmd())
	rootCmd.AddCommand(eventsCmd())

	rootCmd.Version = conf.GetVersion()

	return rootCmd
}
