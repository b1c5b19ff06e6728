package events

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernel-community/nfteasy/babel-api/chainio/indexer"
	"github.com/kernel-community/nfteasy/babel-api/chainio/types"
)

func TestNewLine(t *testing.T) {
	contract := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	charlie := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	transfer := NewLine(&indexer.Event{
		BlockHeight: 12,
		TxHash:      "0xabc",
		LogIndex:    1,
		Contract:    contract,
		EventType:   "Transfer",
		AttrMap:     map[string]interface{}{"from": common.Address{}, "to": charlie, "tokenId": big.NewInt(7)},
	})
	require.IsType(t, &types.TransferEvent{}, transfer.Data)
	assert.Equal(t, charlie, transfer.Data.(*types.TransferEvent).To)
	assert.Equal(t, contract.Hex(), transfer.Contract)

	out, err := json.Marshal(transfer)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"event":"Transfer"`)
	assert.Contains(t, string(out), `"block":12`)

	updated := NewLine(&indexer.Event{
		EventType: "TokenURIUpdated",
		AttrMap:   map[string]interface{}{"tokenId": big.NewInt(7), "tokenURI": "ipfs://new"},
	})
	require.IsType(t, &types.TokenURIUpdatedEvent{}, updated.Data)
	assert.Equal(t, "ipfs://new", updated.Data.(*types.TokenURIUpdatedEvent).TokenURI)

	// malformed and unknown events keep their raw attributes
	malformed := NewLine(&indexer.Event{EventType: "Transfer", AttrMap: map[string]interface{}{"tokenId": "x"}})
	assert.IsType(t, map[string]interface{}{}, malformed.Data)
	granted := NewLine(&indexer.Event{EventType: "RoleGranted", AttrMap: map[string]interface{}{"account": charlie}})
	assert.Equal(t, map[string]interface{}{"account": charlie}, granted.Data)
}
