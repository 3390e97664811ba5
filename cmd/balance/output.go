package main

import (
	"fmt"

	"github.com/praetorian-inc/balance/pkg/config"
	"github.com/praetorian-inc/balance/pkg/report"
	"github.com/praetorian-inc/balance/pkg/sarif"
	"github.com/praetorian-inc/balance/pkg/types"
	"github.com/spf13/cobra"
)

// output is everything a check or report run prints.
type output struct {
	format   string
	color    string
	multi    bool // more than one file; prefix lines with paths and print a summary
	reports  []*types.FileReport
	failures []error
	summary  types.Summary
}

func (o output) render(cmd *cobra.Command) error {
	switch o.format {
	case config.FormatHuman, "":
		return o.renderHuman(cmd)
	case config.FormatJSON:
		doc := report.Document{Reports: o.reports, Summary: o.summary}
		for _, err := range o.failures {
			doc.Errors = append(doc.Errors, report.NewInputFailure(err))
		}
		return report.WriteJSON(cmd.OutOrStdout(), doc)
	case config.FormatSARIF:
		return o.renderSARIF(cmd)
	default:
		return fmt.Errorf("unknown output format: %s", o.format)
	}
}

func (o output) renderHuman(cmd *cobra.Command) error {
	enabled, err := report.ColorEnabled(o.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	styles := report.NewStyles(enabled)

	errEnabled, err := report.ColorEnabled(o.color, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	stderr := report.NewHuman(cmd.ErrOrStderr(), report.NewStyles(errEnabled), false)
	for _, err := range o.failures {
		stderr.InputError(err)
	}

	h := report.NewHuman(cmd.OutOrStdout(), styles, o.multi)
	for _, r := range o.reports {
		if quiet && r.Result.OK() {
			continue
		}
		h.Report(r)
	}
	if o.multi && !quiet {
		h.Summary(o.summary)
	}
	return nil
}

func (o output) renderSARIF(cmd *cobra.Command) error {
	doc := sarif.NewReport(version)
	for _, r := range o.reports {
		doc.AddFileReport(r)
	}

	jsonBytes, err := doc.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(append(jsonBytes, '\n')); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose, quiet)
	for _, err := range o.failures {
		logger.Warn("%v", err)
	}
	return nil
}
