package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/authmint"
)

func authMintCmd() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "auth-mint",
		Short: "Signature-claimed BabelAuthMint commands",
	}

	var out string
	signCmd := &cobra.Command{
		Use:   "sign <signerAddr> <password> <account> <tokenId>",
		Short: "To sign a claim of tokenId for account with a keystore minter.",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.Sign(args[0], args[1], args[2], args[3], out)
		},
	}
	signWithKeyCmd := &cobra.Command{
		Use:   "sign-with-key <privateKey> <account> <tokenId>",
		Short: "To sign a claim of tokenId for account with a hex private key.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.SignWithKey(args[0], args[1], args[2], out)
		},
	}
	for _, c := range []*cobra.Command{signCmd, signWithKeyCmd} {
		c.Flags().StringVarP(&out, "out", "o", "", "write the signed claim to a file instead of stdout")
	}

	claimCmd := &cobra.Command{
		Use:   "claim <userAddr> <password> <account> <tokenId> <signature>",
		Short: "To submit a signed claim.",
		Args:  cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.Claim(args[0], args[1], args[2], args[3], args[4])
		},
	}
	claimFileCmd := &cobra.Command{
		Use:   "claim-file <userAddr> <password> <signedClaimFile>",
		Short: "To submit a signed claim written by sign --out.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.ClaimFile(args[0], args[1], args[2])
		},
	}
	verifyCmd := &cobra.Command{
		Use:   "verify <account> <tokenId> <signature>",
		Short: "To check a claim signature against the minter role.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.Verify(args[0], args[1], args[2])
		},
	}
	grantMinterCmd := &cobra.Command{
		Use:   "grant-minter <userAddr> <password> <minter>",
		Short: "To grant the minter role.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.GrantMinter(args[0], args[1], args[2])
		},
	}
	revokeMinterCmd := &cobra.Command{
		Use:   "revoke-minter <userAddr> <password> <minter>",
		Short: "To revoke the minter role.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.RevokeMinter(args[0], args[1], args[2])
		},
	}
	isMinterCmd := &cobra.Command{
		Use:   "is-minter <account>",
		Short: "To check whether an account holds the minter role.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.IsMinter(args[0])
		},
	}
	ownerOfCmd := &cobra.Command{
		Use:   "owner-of <tokenId>",
		Short: "To show the owner of a token.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.GetOwnerOf(args[0])
		},
	}

	var serveOpts authmint.ServeOptions
	serveCmd := &cobra.Command{
		Use:   "serve <signerAddr> <password>",
		Short: "To run the HTTP claim signing service for a keystore minter.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			authmint.Serve(args[0], args[1], serveOpts)
		},
	}
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", "", "listen address, defaults to [server] addr")
	serveCmd.Flags().StringVar(&serveOpts.ClaimsFile, "claims-file", "", "also serve allow-list proofs from a claims file")
	serveCmd.Flags().StringVar(&serveOpts.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on host:port")

	subCmd.AddCommand(signCmd)
	subCmd.AddCommand(signWithKeyCmd)
	subCmd.AddCommand(claimCmd)
	subCmd.AddCommand(claimFileCmd)
	subCmd.AddCommand(verifyCmd)
	subCmd.AddCommand(grantMinterCmd)
	subCmd.AddCommand(revokeMinterCmd)
	subCmd.AddCommand(isMinterCmd)
	subCmd.AddCommand(ownerOfCmd)
	subCmd.AddCommand(serveCmd)
	return subCmd
}
