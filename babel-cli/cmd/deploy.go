package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/deploy"
)

func deployCmd() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Contract deployment commands",
	}

	var proxyRegistry string
	babelCmd := &cobra.Command{
		Use:   "babel <userAddr> <password> <bytecodeFile>",
		Short: "To deploy the owner-minted Babel collection.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			deploy.Babel(args[0], args[1], args[2], proxyRegistry)
		},
	}
	babelCmd.Flags().StringVar(&proxyRegistry, "proxy-registry", "", "marketplace proxy registry address, defaults to [contract] proxyRegistry")

	authMintCmd := &cobra.Command{
		Use:   "auth-mint <userAddr> <password> <bytecodeFile>",
		Short: "To deploy the signature-claimed BabelAuthMint collection.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			deploy.AuthMint(args[0], args[1], args[2])
		},
	}
	merkleMintCmd := &cobra.Command{
		Use:   "merkle-mint <userAddr> <password> <bytecodeFile> <root|claimsFile>",
		Short: "To deploy the allow-list BabelMerkleMint collection.",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			deploy.MerkleMint(args[0], args[1], args[2], args[3])
		},
	}

	subCmd.AddCommand(babelCmd)
	subCmd.AddCommand(authMintCmd)
	subCmd.AddCommand(merkleMintCmd)
	return subCmd
}
