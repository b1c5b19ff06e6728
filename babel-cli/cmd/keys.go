package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/keys"
)

func keysCmd() *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "keys",
		Short: "Keystore related commands",
	}

	createCmd := &cobra.Command{
		Use:   "create <password>",
		Short: "To create a new keystore account.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			keys.EVMCreateAccount(args[0])
		},
	}
	importCmd := &cobra.Command{
		Use:   "import <privateKey> <password>",
		Short: "To import a hex private key into the keystore.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			keys.EVMImportKey(args[0], args[1])
		},
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "To list keystore accounts.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			keys.EVMList()
		},
	}

	subCmd.AddCommand(createCmd)
	subCmd.AddCommand(importCmd)
	subCmd.AddCommand(listCmd)
	return subCmd
}
