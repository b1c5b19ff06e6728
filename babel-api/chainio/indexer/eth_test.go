package indexer

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
)

var (
	contract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	other    = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

type fakeSource struct {
	mu        sync.Mutex
	height    uint64
	logs      []types.Log
	failures  int
	filterErr error
	queries   []ethereum.FilterQuery
}

func (f *fakeSource) BlockNumber(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("node unavailable")
	}
	return f.height, nil
}

func (f *fakeSource) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.filterErr != nil {
		err := f.filterErr
		f.filterErr = nil
		return nil, err
	}
	var out []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSource) push(height uint64, logs ...types.Log) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.height = height
	f.logs = append(f.logs, logs...)
}

func transferLog(t *testing.T, block uint64, from, to common.Address, tokenID int64) types.Log {
	babel, err := babelabi.GetContractABI("", babelabi.Babel)
	require.NoError(t, err)
	return types.Log{
		Address:     contract,
		BlockNumber: block,
		Topics: []common.Hash{
			babel.Events["Transfer"].ID,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
			common.BigToHash(big.NewInt(tokenID)),
		},
	}
}

func uriLog(t *testing.T, block uint64, tokenID int64, uri string) types.Log {
	babel, err := babelabi.GetContractABI("", babelabi.Babel)
	require.NoError(t, err)
	event := babel.Events["TokenURIUpdated"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(tokenID), uri)
	require.NoError(t, err)
	return types.Log{
		Address:     contract,
		BlockNumber: block,
		Topics:      []common.Hash{event.ID},
		Data:        data,
	}
}

func newIndexer(t *testing.T, source *fakeSource, start uint64) *ETHIndexer {
	babel, err := babelabi.GetContractABI("", babelabi.Babel)
	require.NoError(t, err)
	ix := NewETHIndexer(source, babel, contract, start, nil, rate.Inf, 3)
	ix.SetPollInterval(10 * time.Millisecond)
	ix.SetBatchSize(2)
	return ix
}

func next(t *testing.T, ch <-chan *Event) *Event {
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestIndexerHistoryAndPolling(t *testing.T) {
	source := &fakeSource{}
	removed := transferLog(t, 2, common.Address{}, other, 99)
	removed.Removed = true
	unknown := types.Log{Address: contract, BlockNumber: 3, Topics: []common.Hash{common.HexToHash("0x01")}}
	source.push(5,
		transferLog(t, 1, common.Address{}, other, 0),
		removed,
		unknown,
		uriLog(t, 5, 0, "https://kernel.community/images/shares/learning.png"),
	)

	ix := newIndexer(t, source, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := ix.Run(ctx)
	require.NoError(t, err)

	e := next(t, ch)
	assert.Equal(t, "Transfer", e.EventType)
	assert.Equal(t, uint64(1), e.BlockHeight)
	assert.Equal(t, contract, e.Contract)
	assert.Equal(t, common.Address{}, e.AttrMap["from"])
	assert.Equal(t, other, e.AttrMap["to"])
	assert.Equal(t, big.NewInt(0), e.AttrMap["tokenId"])

	e = next(t, ch)
	assert.Equal(t, "TokenURIUpdated", e.EventType)
	assert.Equal(t, "https://kernel.community/images/shares/learning.png", e.AttrMap["tokenURI"])

	require.Eventually(t, ix.IsUpToDate, 3*time.Second, 10*time.Millisecond)

	source.push(7, transferLog(t, 7, other, common.Address{}, 0))
	e = next(t, ch)
	assert.Equal(t, uint64(7), e.BlockHeight)
	assert.Equal(t, other, e.AttrMap["from"])
	require.Eventually(t, func() bool { return ix.CurrentBlockHeight() == 8 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)
}

func TestIndexerRecoversFromRPCErrors(t *testing.T) {
	source := &fakeSource{failures: 4, filterErr: errors.New("too many results")}
	source.push(3, transferLog(t, 3, common.Address{}, other, 1))

	ix := newIndexer(t, source, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := ix.Run(ctx)
	require.NoError(t, err)

	e := next(t, ch)
	assert.Equal(t, uint64(3), e.BlockHeight)
	assert.Equal(t, big.NewInt(1), e.AttrMap["tokenId"])

	source.mu.Lock()
	defer source.mu.Unlock()
	require.NotEmpty(t, source.queries)
	assert.Equal(t, uint64(2), source.queries[0].FromBlock.Uint64())
	assert.Equal(t, []common.Address{contract}, source.queries[0].Addresses)
}

func TestIndexerTopicFilter(t *testing.T) {
	babel, err := babelabi.GetContractABI("", babelabi.Babel)
	require.NoError(t, err)
	source := &fakeSource{}
	source.push(0)

	ix := NewETHIndexer(source, babel, contract, 0, []common.Hash{babel.Events["Transfer"].ID}, rate.Inf, 1)
	require.NoError(t, ix.processBlockRange(context.Background(), 0, 0))
	require.Len(t, source.queries, 1)
	assert.Equal(t, [][]common.Hash{{babel.Events["Transfer"].ID}}, source.queries[0].Topics)
	assert.Equal(t, uint64(1), ix.CurrentBlockHeight())

	_, err = NewETHIndexer(source, nil, contract, 0, nil, rate.Inf, 1).Run(context.Background())
	assert.Error(t, err)
}
