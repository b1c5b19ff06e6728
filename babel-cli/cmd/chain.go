package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

func chainCmd() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "chain",
		Short: "Chain related commands",
	}

	nodeCmd := &cobra.Command{
		Use:   "node",
		Short: "To query the configured node.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			chain.QueryNode()
		},
	}
	txnCmd := &cobra.Command{
		Use:   "txn <txnHash>",
		Short: "To query a transaction receipt.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			chain.QueryTxn(args[0])
		},
	}

	subCmd.AddCommand(nodeCmd)
	subCmd.AddCommand(txnCmd)
	return subCmd
}
