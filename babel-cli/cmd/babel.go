package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/babel"
)

func babelCmd() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "babel",
		Short: "Owner-minted Babel collection commands",
	}

	var to string
	mintCmd := &cobra.Command{
		Use:   "mint <userAddr> <password> <metadataURI>",
		Short: "To mint one token.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			babel.Mint(args[0], args[1], to, args[2])
		},
	}
	batchMintCmd := &cobra.Command{
		Use:   "batch-mint <userAddr> <password> <metadataURIs>",
		Short: "To mint one token per comma separated metadata URI.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			babel.BatchMint(args[0], args[1], to, args[2])
		},
	}
	for _, c := range []*cobra.Command{mintCmd, batchMintCmd} {
		c.Flags().StringVar(&to, "to", "", "recipient address, defaults to [mint] to")
	}

	burnCmd := &cobra.Command{
		Use:   "burn <userAddr> <password> <tokenId>",
		Short: "To burn a token.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			babel.Burn(args[0], args[1], args[2])
		},
	}
	setTokenURICmd := &cobra.Command{
		Use:   "set-token-uri <userAddr> <password> <tokenId> <metadataURI>",
		Short: "To set the metadata URI of a token.",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			babel.SetTokenURI(args[0], args[1], args[2], args[3])
		},
	}
	updateTokenURICmd := &cobra.Command{
		Use:   "update-token-uri <userAddr> <password> <tokenId> <metadataURI>",
		Short: "To update the metadata URI of a token and emit TokenURIUpdated.",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			babel.UpdateTokenURI(args[0], args[1], args[2], args[3])
		},
	}
	transferOwnershipCmd := &cobra.Command{
		Use:   "transfer-ownership <userAddr> <password> <newOwner>",
		Short: "To transfer collection ownership.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			babel.TransferOwnership(args[0], args[1], args[2])
		},
	}
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "To show name, symbol, supply and owner.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			babel.GetInfo()
		},
	}
	tokenCmd := &cobra.Command{
		Use:   "token <tokenId>",
		Short: "To show the owner and metadata URI of a token.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			babel.GetToken(args[0])
		},
	}
	balanceCmd := &cobra.Command{
		Use:   "balance <owner>",
		Short: "To show how many tokens an address holds.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			babel.GetBalance(args[0])
		},
	}

	subCmd.AddCommand(mintCmd)
	subCmd.AddCommand(batchMintCmd)
	subCmd.AddCommand(burnCmd)
	subCmd.AddCommand(setTokenURICmd)
	subCmd.AddCommand(updateTokenURICmd)
	subCmd.AddCommand(transferOwnershipCmd)
	subCmd.AddCommand(infoCmd)
	subCmd.AddCommand(tokenCmd)
	subCmd.AddCommand(balanceCmd)
	return subCmd
}
