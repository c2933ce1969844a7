// Package commands implements the CLI commands for the psync tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/psync/internal/adapters/detector"
	"go.trai.ch/psync/internal/app"
	"go.trai.ch/psync/internal/build"
	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
)

// CLI represents the command line interface for psync.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Add(ctx context.Context, paths []string) error
	Remove(ctx context.Context, paths []string) error
	Move(ctx context.Context, from, to string) error
	Check(ctx context.Context, path string) (domain.ProjectRef, bool, error)
	List(ctx context.Context, start string, opts app.ListOptions) (app.Listing, error)
	Init(ctx context.Context, cwd string) error
	Watch(ctx context.Context, root string) error
}

// LogController is implemented by loggers whose output format can be switched
// at runtime. Loggers without the capability keep their configured format.
type LogController interface {
	SetJSON(enable bool)
	SetPlain(enable bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "psync",
		Short:         "Keep csproj manifests in sync with the source tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringP("output", "o", "auto", "Output mode: auto, pretty, plain, or ci")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		c.configureLogging(cmd)
	}

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newMoveCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// configureLogging applies the output flags when the logger supports runtime
// mode switching. --log-json wins over the output mode.
func (c *CLI) configureLogging(cmd *cobra.Command) {
	ctl, ok := c.logger.(LogController)
	if !ok {
		return
	}

	if jsonLogs, _ := cmd.Flags().GetBool("log-json"); jsonLogs {
		ctl.SetJSON(true)
		return
	}

	outputFlag, _ := cmd.Flags().GetString("output")
	if detector.ResolveMode(detector.DetectEnvironment(), outputFlag) == detector.ModePlain {
		ctl.SetPlain(true)
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
