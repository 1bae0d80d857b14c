package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/csr-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reports  commands.ReportSource
	partners commands.PartnerDirectory
	rootCmd  *cobra.Command
}

// Options contain the services the commands run against
type Options struct {
	Reports  commands.ReportSource
	Partners commands.PartnerDirectory
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reports:  opts.Reports,
		partners: opts.Partners,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

// Run executes the command line in args.
func (cli *CLI) Run(ctx context.Context, args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "csr",
		Short:         "Sustainability reporting toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewReportsCmd(cli.reports))
	cmd.AddCommand(commands.NewFrameworksCmd())
	cmd.AddCommand(commands.NewKPIsCmd())
	cmd.AddCommand(commands.NewPartnersCmd(cli.partners))

	return cmd
}
