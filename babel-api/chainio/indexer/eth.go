package indexer

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBatchSize    = 100
	defaultPollInterval = 5 * time.Second
	queueSize           = 1000
)

// LogSource is the RPC surface the indexer polls.
type LogSource interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

type ETHIndexer struct {
	mu                 sync.Mutex
	client             LogSource
	contractABI        *abi.ABI
	contractAddress    common.Address
	startBlockHeight   uint64
	currentBlockHeight uint64
	upToDate           atomic.Bool
	eventTypes         []common.Hash
	limiter            *rate.Limiter
	maxRetries         int
	batchSize          uint64
	pollInterval       time.Duration
	processingQueue    chan *Event
}

func NewETHIndexer(client LogSource, contractABI *abi.ABI, contractAddress common.Address, startBlockHeight uint64, eventTypes []common.Hash, rateLimit rate.Limit, maxRetries int) *ETHIndexer {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &ETHIndexer{
		client:             client,
		contractABI:        contractABI,
		contractAddress:    contractAddress,
		startBlockHeight:   startBlockHeight,
		currentBlockHeight: startBlockHeight,
		eventTypes:         eventTypes,
		limiter:            rate.NewLimiter(rateLimit, 1),
		maxRetries:         maxRetries,
		batchSize:          defaultBatchSize,
		pollInterval:       defaultPollInterval,
		processingQueue:    make(chan *Event, queueSize),
	}
}

// SetPollInterval changes how often new blocks are polled once history is
// synced. Call before Run.
func (ei *ETHIndexer) SetPollInterval(d time.Duration) {
	ei.pollInterval = d
}

// SetBatchSize changes the number of blocks requested per FilterLogs call.
// Call before Run.
func (ei *ETHIndexer) SetBatchSize(n uint64) {
	if n > 0 {
		ei.batchSize = n
	}
}

func (ei *ETHIndexer) IsUpToDate() bool {
	return ei.upToDate.Load()
}

// CurrentBlockHeight is the next block to be processed.
func (ei *ETHIndexer) CurrentBlockHeight() uint64 {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	return ei.currentBlockHeight
}

// Run syncs history and then follows the chain head until ctx is done, when
// the returned channel is closed.
func (ei *ETHIndexer) Run(ctx context.Context) (<-chan *Event, error) {
	if ei.contractABI == nil {
		return nil, fmt.Errorf("contract ABI is nil")
	}
	zap.L().Info("Indexer starting block height", zap.Uint64("block_height", ei.startBlockHeight), zap.String("contract", ei.contractAddress.Hex()))
	Go(func() {
		defer close(ei.processingQueue)
		if !ei.syncHistoryBlocks(ctx) {
			return
		}
		ei.pollNewBlocks(ctx)
	})
	return ei.processingQueue, nil
}

// syncHistoryBlocks reports whether it caught up before ctx was done.
func (ei *ETHIndexer) syncHistoryBlocks(ctx context.Context) bool {
	zap.L().Info("Syncing historical blocks...")
	for {
		if ctx.Err() != nil {
			return false
		}
		latestHeight, err := ei.getLatestBlockHeight(ctx)
		if err != nil {
			zap.L().Error("Error getting latest block height", zap.Error(err))
			if !sleep(ctx, ei.pollInterval) {
				return false
			}
			continue
		}

		current := ei.CurrentBlockHeight()
		if current > latestHeight {
			ei.upToDate.Store(true)
			zap.L().Info("Caught up with the latest block", zap.Uint64("block_height", latestHeight))
			return true
		}

		endHeight := current + ei.batchSize - 1
		if endHeight > latestHeight {
			endHeight = latestHeight
		}

		if err = ei.processBlockRange(ctx, current, endHeight); err != nil {
			zap.L().Error("Error processing block range", zap.Error(err))
			if !sleep(ctx, ei.pollInterval) {
				return false
			}
		}
	}
}

func (ei *ETHIndexer) pollNewBlocks(ctx context.Context) {
	zap.L().Info("Starting to poll for new blocks...")
	ticker := time.NewTicker(ei.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			latestHeight, err := ei.getLatestBlockHeight(ctx)
			if err != nil {
				zap.L().Error("Error getting latest block height", zap.Error(err))
				continue
			}

			for current := ei.CurrentBlockHeight(); current <= latestHeight; current = ei.CurrentBlockHeight() {
				endHeight := current + ei.batchSize - 1
				if endHeight > latestHeight {
					endHeight = latestHeight
				}
				if err = ei.processBlockRange(ctx, current, endHeight); err != nil {
					zap.L().Error("Error processing new blocks", zap.Error(err))
					break
				}
			}
		}
	}
}

func (ei *ETHIndexer) getLatestBlockHeight(ctx context.Context) (uint64, error) {
	var lastErr error
	for retry := 0; retry < ei.maxRetries; retry++ {
		if err := ei.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limit error: %w", err)
		}

		latestBlockHeight, err := ei.client.BlockNumber(ctx)
		if err == nil {
			return latestBlockHeight, nil
		}
		lastErr = err

		zap.L().Warn("Error getting latest block height", zap.Int("attempt", retry+1), zap.Int("max_retries", ei.maxRetries), zap.Error(err))
		if !sleep(ctx, time.Duration(retry+1)*100*time.Millisecond) {
			return 0, ctx.Err()
		}
	}

	return 0, fmt.Errorf("failed to get latest block height after %d attempts: %w", ei.maxRetries, lastErr)
}

// processBlockRange queues the events of blocks [startHeight, endHeight] and
// advances the cursor past endHeight.
func (ei *ETHIndexer) processBlockRange(ctx context.Context, startHeight, endHeight uint64) error {
	if err := ei.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(startHeight),
		ToBlock:   new(big.Int).SetUint64(endHeight),
		Addresses: []common.Address{ei.contractAddress},
	}
	if len(ei.eventTypes) > 0 {
		query.Topics = [][]common.Hash{ei.eventTypes}
	}
	logs, err := ei.client.FilterLogs(ctx, query)
	if err != nil {
		return fmt.Errorf("error fetching logs at startHeight %d endHeight %d: %w", startHeight, endHeight, err)
	}

	for _, item := range logs {
		event, err := ei.parseLog(item)
		if err != nil {
			return fmt.Errorf("error processing log at blockNumber %d txHash %s index %d: %w", item.BlockNumber, item.TxHash.Hex(), item.Index, err)
		}
		if event == nil {
			continue
		}
		select {
		case ei.processingQueue <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	ei.mu.Lock()
	ei.currentBlockHeight = endHeight + 1
	ei.mu.Unlock()
	return nil
}

// parseLog returns nil for removed logs and events missing from the ABI.
func (ei *ETHIndexer) parseLog(log types.Log) (*Event, error) {
	if log.Removed || len(log.Topics) == 0 {
		return nil, nil
	}
	event, err := ei.contractABI.EventByID(log.Topics[0])
	if err != nil {
		return nil, nil
	}
	result, err := ei.eventParser(event, log)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event %s: %w", event.Name, err)
	}
	return &Event{
		BlockHeight: log.BlockNumber,
		TxHash:      log.TxHash.Hex(),
		LogIndex:    log.Index,
		Contract:    log.Address,
		EventType:   event.Name,
		AttrMap:     result,
	}, nil
}

func (ei *ETHIndexer) eventParser(event *abi.Event, log types.Log) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	if err := ei.contractABI.UnpackIntoMap(result, event.Name, log.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack log data: %w", err)
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(result, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse topics: %w", err)
	}

	return result, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
