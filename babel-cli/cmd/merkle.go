package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/merklemint"
)

func merkleCmd() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "merkle",
		Short: "Allow-list BabelMerkleMint commands",
	}

	createCmd := &cobra.Command{
		Use:   "create <allowListFile> <claimsFile>",
		Short: "To build the allow-list tree and write every claim with its proof.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			merklemint.Create(args[0], args[1])
		},
	}
	proofCmd := &cobra.Command{
		Use:   "proof <claimsFile> <account> <tokenId>",
		Short: "To show the proof of one claim.",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			merklemint.Proof(args[0], args[1], args[2])
		},
	}
	verifyCmd := &cobra.Command{
		Use:   "verify <root> <account> <tokenId> [proof]",
		Short: "To fold a comma separated proof against a root.",
		Args:  cobra.RangeArgs(3, 4),
		Run: func(cmd *cobra.Command, args []string) {
			proof := ""
			if len(args) == 4 {
				proof = args[3]
			}
			merklemint.Verify(args[0], args[1], args[2], proof)
		},
	}
	claimCmd := &cobra.Command{
		Use:   "claim <userAddr> <password> <claimsFile> <account> <tokenId>",
		Short: "To submit an allow-list claim.",
		Args:  cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			merklemint.Claim(args[0], args[1], args[2], args[3], args[4])
		},
	}
	ownerOfCmd := &cobra.Command{
		Use:   "owner-of <tokenId>",
		Short: "To show the owner of a token.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			merklemint.GetOwnerOf(args[0])
		},
	}

	subCmd.AddCommand(createCmd)
	subCmd.AddCommand(proofCmd)
	subCmd.AddCommand(verifyCmd)
	subCmd.AddCommand(claimCmd)
	subCmd.AddCommand(ownerOfCmd)
	return subCmd
}
