package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dbracewell/mango/broker"
	"github.com/dbracewell/mango/config"
	"github.com/dbracewell/mango/counter"
	"github.com/dbracewell/mango/resource"
	"github.com/dbracewell/mango/stream"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	TopN      int
	Lowercase bool
}

// NewCountCommand creates the count command: token frequencies across the
// given files, one producer per file feeding a shared counter.
func NewCountCommand() *cobra.Command {
	opts := &CountOptions{}

	cmd := &cobra.Command{
		Use:   "count <file>...",
		Short: "Count token frequencies across files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, opts, args)
		},
	}
	cmd.Flags().IntVarP(&opts.TopN, "top", "n", 10, "number of tokens to report")
	cmd.Flags().BoolVar(&opts.Lowercase, "lowercase", false, "fold tokens to lower case")

	return cmd
}

func runCount(cmd *cobra.Command, opts *CountOptions, files []string) error {
	// engine knobs come from configuration, environment included
	cfg := config.New()
	parallelism, err := cfg.Get("stream.parallelism").Or("4").AsInt()
	if err != nil {
		return err
	}
	buffer, err := cfg.Get("stream.buffer").Or("0").AsInt()
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		counts = counter.New[string]()
	)

	b := broker.New[string]().BufferSize(buffer)
	for _, file := range files {
		src := resource.File(file)
		b.AddProducer(fileTokens(src, opts.Lowercase), 1)
	}
	b.AddConsumer(func(ctx context.Context, token string) error {
		mu.Lock()
		counts.Increment(token)
		mu.Unlock()
		return nil
	}, parallelism)

	br, err := b.Build()
	if err != nil {
		return err
	}
	if err := br.Run(cmd.Context()); err != nil {
		return err
	}

	return printTop(cmd, counts, opts.TopN)
}

// fileTokens produces the whitespace-separated tokens of one file.
func fileTokens(src resource.Resource, lowercase bool) broker.Producer[string] {
	return broker.ProducerFunc[string](func(ctx context.Context, yield func(string) error) error {
		tokens := stream.FlatMap(stream.FromResource(ctx, src), 1, func(line string) ([]string, error) {
			return strings.Fields(line), nil
		})
		return stream.ForEach(tokens, 1, func(token string) error {
			if lowercase {
				token = strings.ToLower(token)
			}
			return yield(token)
		})
	})
}

func printTop(cmd *cobra.Command, counts *counter.Counter[string], n int) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tCOUNT")
	for i, token := range counts.ItemsByCount(false) {
		if i >= n {
			break
		}
		fmt.Fprintf(w, "%s\t%.0f\n", token, counts.Get(token))
	}
	return w.Flush()
}
