package babel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kernel-community/nfteasy/babel-api/utils"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
)

func GetInfo() {
	ctx := context.Background()
	s := NewService()
	resp, err := s.Babel.CollectionInfo(ctx)
	if err != nil {
		panic(fmt.Sprintf("%v", err))
	}
	printJSON(resp)
}

func GetToken(tokenID string) {
	ctx := context.Background()
	id, err := utils.ParseTokenID(tokenID)
	if err != nil {
		panic(err)
	}
	s := NewService()
	resp, err := s.Babel.TokenInfo(ctx, id)
	if err != nil {
		panic(fmt.Sprintf("%v", err))
	}
	printJSON(resp)
}

func GetBalance(owner string) {
	ctx := context.Background()
	s := NewService()
	ownerAddr := chain.MustAddress("owner", owner)
	resp, err := s.Babel.BalanceOf(ctx, ownerAddr)
	if err != nil {
		panic(fmt.Sprintf("%v", err))
	}
	fmt.Printf("Balance of %s: %s\n", ownerAddr.Hex(), resp)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}
