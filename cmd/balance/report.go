package main

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/balance/pkg/config"
	"github.com/praetorian-inc/balance/pkg/store"
	"github.com/praetorian-inc/balance/pkg/types"
	"github.com/spf13/cobra"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render stored check results",
	Long:  `Read results written by "check --output" and print them again`,
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	addReportFlags(reportCmd)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportDatastore, "datastore", "balance.db", "Path to result database")
	cmd.Flags().StringVar(&reportFormat, "format", config.FormatHuman, "Output format: human, json, sarif")
	cmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportDatastore == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}
	if _, err := os.Stat(reportDatastore); err != nil {
		return fmt.Errorf("datastore not found: %s", reportDatastore)
	}

	s, err := store.New(store.Config{Path: reportDatastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	reports, err := s.GetResults()
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	var summary types.Summary
	for _, r := range reports {
		summary.Add(r.Result)
	}

	out := output{
		format:  reportFormat,
		color:   reportColor,
		multi:   true,
		reports: reports,
		summary: summary,
	}
	return out.render(cmd)
}
