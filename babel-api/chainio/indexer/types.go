package indexer

import "github.com/ethereum/go-ethereum/common"

type Event struct {
	BlockHeight uint64
	TxHash      string
	LogIndex    uint
	Contract    common.Address
	EventType   string
	AttrMap     map[string]interface{}
}
