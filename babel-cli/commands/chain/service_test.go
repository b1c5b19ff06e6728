package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestMustAddress(t *testing.T) {
	addr := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	assert.Equal(t, common.HexToAddress(addr), MustAddress("minter", addr))
	assert.PanicsWithValue(t, "minter address is empty!", func() { MustAddress("minter", "") })
	assert.Panics(t, func() { MustAddress("minter", "0x1234") })

	wallet := Wallet(addr, "pwd")
	assert.Equal(t, common.HexToAddress(addr), wallet.FromAddr)
	assert.Equal(t, "pwd", wallet.PWD)
}
