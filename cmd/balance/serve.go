package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/balance/pkg/scanner"
	"github.com/praetorian-inc/balance/pkg/serve"
	"github.com/praetorian-inc/balance/pkg/store"
	"github.com/spf13/cobra"
)

var serveOutputPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming NDJSON server",
	Long: `Run Balance as a long-lived server that reads check requests from
stdin and writes one JSON response per line to stdout.

Requests:
  {"type":"check","payload":{"source":"a.go","content":"..."}}
  {"type":"check_batch","payload":{"items":[{"source":"a.go","content":"..."}]}}
  {"type":"close"}

The server exits when stdin closes, on a close request, or on SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveOutputPath, "output", "", "Result database path (default: in-memory)")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := store.New(store.Config{Path: serveOutputPath})
	if err != nil {
		return err
	}
	core := scanner.NewCore(s, newLogger(cmd.ErrOrStderr(), verbose, quiet))
	defer core.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
