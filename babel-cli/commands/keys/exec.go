package keys

import (
	"fmt"

	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

func EVMCreateAccount(password string) {
	s := chain.NewService("keys")
	account, err := s.ChainIO.CreateAccount(password)
	if err != nil {
		panic(err)
	}
	fmt.Printf("create new account: %s\n", account.Address)
}

func EVMImportKey(privateKey, password string) {
	s := chain.NewService("keys")
	account, err := s.ChainIO.ImportKey(privateKey, password)
	if err != nil {
		panic(err)
	}
	fmt.Printf("import new account: %s\n", account.Address)
}

func EVMList() {
	s := chain.NewService("keys")
	accounts := s.ChainIO.ListAccounts()
	if len(accounts) == 0 {
		fmt.Printf("No accounts in keystore.\n")
		return
	}
	for i, account := range accounts {
		fmt.Printf("%d. %s\n", i+1, account.Address)
	}
}
