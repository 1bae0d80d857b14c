package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/spf13/cobra"
)

type ReportSource interface {
	FetchReports(ctx context.Context) (*async.Future[[]domain.Report], error)
}

type ReportsCmd struct {
	output string
	source ReportSource
}

func NewReportsCmd(source ReportSource) *cobra.Command {
	rc := &ReportsCmd{source: source}
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Fetch and print sustainability reports",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.output, "output", "o", string(export.FormatTable), "Output format (table or yaml)")

	return cmd
}

func (rc *ReportsCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(rc.output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	future, err := rc.source.FetchReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to start report fetch: %w", err)
	}
	reports, err := future.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch reports: %w", err)
	}

	return export.NewReporter(cmd.OutOrStdout(), format).Reports(adapters.MapReportsDomainToApi(reports))
}
