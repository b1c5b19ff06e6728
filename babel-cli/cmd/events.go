package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kernel-community/nfteasy/babel-cli/commands/events"
)

func eventsCmd() *cobra.Command {
	var opts events.Options
	watchCmd := &cobra.Command{
		Use:       "events <babel|auth-mint|merkle-mint>",
		Short:     "To print contract events as JSON lines until interrupted.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"babel", "auth-mint", "merkle-mint"},
		Run: func(cmd *cobra.Command, args []string) {
			events.Watch(args[0], opts)
		},
	}
	watchCmd.Flags().Uint64Var(&opts.FromBlock, "from-block", 0, "first block to index")
	watchCmd.Flags().DurationVar(&opts.PollInterval, "poll-interval", 0, "head polling interval, 0 keeps the indexer default")
	watchCmd.Flags().Uint64Var(&opts.BatchSize, "batch-size", 0, "blocks per log query, 0 keeps the indexer default")
	watchCmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on host:port")
	watchCmd.Flags().StringSliceVar(&opts.KafkaBrokers, "kafka-brokers", nil, "also publish events to these kafka brokers, defaults to [kafka] brokers")
	watchCmd.Flags().StringVar(&opts.KafkaTopic, "kafka-topic", "", "kafka topic, defaults to [kafka] topic")
	return watchCmd
}
