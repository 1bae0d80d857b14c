package commands

import (
	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/csr-atlas/pkg/services/catalog"
	"github.com/spf13/cobra"
)

func NewFrameworksCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "frameworks",
		Short: "List the supported reporting frameworks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(output)
			if err != nil {
				return err
			}
			return export.NewReporter(cmd.OutOrStdout(), format).Frameworks(catalog.Frameworks())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(export.FormatTable), "Output format (table or yaml)")
	return cmd
}

func NewKPIsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "List the KPI categories and subcategories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(output)
			if err != nil {
				return err
			}
			categories := adapters.MapCategoriesToApi(catalog.KPICategories())
			return export.NewReporter(cmd.OutOrStdout(), format).Categories(categories)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(export.FormatTable), "Output format (table or yaml)")
	return cmd
}
