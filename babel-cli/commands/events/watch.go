package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	babelabi "github.com/kernel-community/nfteasy/babel-api/chainio/abi"
	"github.com/kernel-community/nfteasy/babel-api/chainio/api"
	"github.com/kernel-community/nfteasy/babel-api/chainio/indexer"
	"github.com/kernel-community/nfteasy/babel-api/iac"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/metrics"
	"github.com/kernel-community/nfteasy/babel-api/metrics/indicators/claims"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

const (
	rateLimit  = rate.Limit(5)
	maxRetries = 5
)

type Options struct {
	FromBlock    uint64
	PollInterval time.Duration
	BatchSize    uint64
	MetricsAddr  string
	// KafkaBrokers, when set, also publishes every line to KafkaTopic.
	KafkaBrokers []string
	KafkaTopic   string
}

// Line is one printed event.
type Line struct {
	Block    uint64      `json:"block"`
	TxHash   string      `json:"txHash"`
	LogIndex uint        `json:"logIndex"`
	Contract string      `json:"contract"`
	Event    string      `json:"event"`
	Data     interface{} `json:"data"`
}

// Watch prints the events of one collection as JSON lines until interrupted.
// contract is babel, auth-mint or merkle-mint.
func Watch(contract string, opts Options) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := chain.NewService("events")
	defer s.ChainIO.Close()
	initZap(conf.C.LogLevel)

	contractName, addr := resolveContract(contract)
	contractABI := chain.ContractABI(contractName)
	eventTypes := make([]common.Hash, 0, len(contractABI.Events))
	for _, event := range contractABI.Events {
		eventTypes = append(eventTypes, event.ID)
	}

	var idx *indexer.ETHIndexer
	switch contractName {
	case babelabi.Babel:
		idx = api.NewBabelImpl(s.ChainIO, addr, contractABI).Indexer(s.ChainIO.GetBackend(), opts.FromBlock, eventTypes, rateLimit, maxRetries)
	case babelabi.BabelAuthMint:
		idx = api.NewBabelAuthMintImpl(s.ChainIO, addr, contractABI).Indexer(s.ChainIO.GetBackend(), opts.FromBlock, eventTypes, rateLimit, maxRetries)
	default:
		idx = api.NewBabelMerkleMintImpl(s.ChainIO, addr, contractABI).Indexer(s.ChainIO.GetBackend(), opts.FromBlock, eventTypes, rateLimit, maxRetries)
	}
	if opts.PollInterval > 0 {
		idx.SetPollInterval(opts.PollInterval)
	}
	idx.SetBatchSize(opts.BatchSize)

	indicators := claims.NewPromIndicators(contractName, s.Registry)
	var metricsErr <-chan error
	if opts.MetricsAddr != "" {
		metricsErr = metrics.NewBabelMetrics(opts.MetricsAddr, s.Logger).Start(ctx, s.Registry)
	}

	var publisher iac.Publisher
	if brokers := opts.brokers(); len(brokers) > 0 {
		var err error
		if publisher, err = iac.NewPublisher(brokers, opts.topic()); err != nil {
			panic(err)
		}
		defer publisher.Close()
	}

	eventChan, err := idx.Run(ctx)
	if err != nil {
		panic(err)
	}
	for {
		select {
		case err, ok := <-metricsErr:
			if ok && err != nil {
				s.Logger.Error("metrics server failed", logger.WithField("err", err))
			}
			metricsErr = nil
		case event, ok := <-eventChan:
			if !ok {
				s.Logger.Info("event watch stopped", logger.WithField("height", idx.CurrentBlockHeight()))
				return
			}
			indicators.IncrementEventsTotal(event.EventType)
			out, err := json.Marshal(NewLine(event))
			if err != nil {
				s.Logger.Error("failed to encode event", logger.WithField("err", err))
				continue
			}
			fmt.Println(string(out))
			if publisher == nil {
				continue
			}
			msg := iac.Msg{PartitionKey: event.Contract.Hex(), Message: string(out)}
			if err := publisher.Publish(ctx, msg); err != nil {
				s.Logger.Error("failed to publish event", logger.WithField("err", err))
			}
		}
	}
}

func (o Options) brokers() []string {
	if len(o.KafkaBrokers) > 0 {
		return o.KafkaBrokers
	}
	return conf.C.Kafka.Brokers
}

func (o Options) topic() string {
	if o.KafkaTopic != "" {
		return o.KafkaTopic
	}
	return conf.C.Kafka.Topic
}

// NewLine decodes the events it knows and passes the rest through raw.
func NewLine(event *indexer.Event) Line {
	line := Line{
		Block:    event.BlockHeight,
		TxHash:   event.TxHash,
		LogIndex: event.LogIndex,
		Contract: event.Contract.Hex(),
		Event:    event.EventType,
		Data:     event.AttrMap,
	}
	switch event.EventType {
	case "Transfer":
		if transfer, err := api.ParseTransfer(event); err == nil {
			line.Data = transfer
		}
	case "TokenURIUpdated":
		if updated, err := api.ParseTokenURIUpdated(event); err == nil {
			line.Data = updated
		}
	}
	return line
}

func resolveContract(contract string) (string, common.Address) {
	switch contract {
	case "babel":
		return babelabi.Babel, chain.MustAddress("Babel contract", conf.C.Contract.Babel)
	case "auth-mint":
		return babelabi.BabelAuthMint, chain.MustAddress("BabelAuthMint contract", conf.C.Contract.BabelAuthMint)
	case "merkle-mint":
		return babelabi.BabelMerkleMint, chain.MustAddress("BabelMerkleMint contract", conf.C.Contract.BabelMerkleMint)
	default:
		panic(fmt.Sprintf("unknown contract %q, want babel, auth-mint or merkle-mint", contract))
	}
}

// initZap routes the indexer's zap.L() output at the configured level.
func initZap(level string) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	zl, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(zl)
}
