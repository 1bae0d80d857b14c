package commands

import (
	"fmt"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/csr-atlas/pkg/services/partners"
	"github.com/spf13/cobra"
)

type PartnerDirectory interface {
	ToggleSort(key partners.SortKey) (partners.SortConfig, error)
	SortConfig() partners.SortConfig
	View(term string) ([]domain.Partner, error)
}

type PartnersCmd struct {
	sortKey    string
	descending bool
	filter     string
	output     string
	directory  PartnerDirectory
}

func NewPartnersCmd(directory PartnerDirectory) *cobra.Command {
	pc := &PartnersCmd{directory: directory}
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "List partnerships, optionally sorted and filtered",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.sortKey, "sort", "", "Sort column (name, type, projects, totalImpact)")
	cmd.Flags().BoolVar(&pc.descending, "desc", false, "Sort in descending order (requires --sort)")
	cmd.Flags().StringVar(&pc.filter, "filter", "", "Case-insensitive match on name or type")
	cmd.Flags().StringVarP(&pc.output, "output", "o", string(export.FormatTable), "Output format (table or yaml)")

	return cmd
}

func (pc *PartnersCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(pc.output)
	if err != nil {
		return err
	}
	if pc.descending && pc.sortKey == "" {
		return fmt.Errorf("--desc requires --sort")
	}

	if pc.sortKey != "" {
		key, err := partners.ParseSortKey(pc.sortKey)
		if err != nil {
			return err
		}
		cfg := pc.directory.SortConfig()
		// Toggling walks the column through ascending then descending.
		for cfg.Key != key || (cfg.Direction == partners.Descending) != pc.descending {
			if cfg, err = pc.directory.ToggleSort(key); err != nil {
				return err
			}
		}
	}

	view, err := pc.directory.View(pc.filter)
	if err != nil {
		return err
	}
	return export.NewReporter(cmd.OutOrStdout(), format).
		Partners(adapters.MapPartnerViewToApi(view, pc.directory.SortConfig(), pc.filter))
}
