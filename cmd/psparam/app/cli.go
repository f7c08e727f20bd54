package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phillarmonic/psparam/internal/debug"
	"github.com/phillarmonic/psparam/internal/domain/parameter"
	perrors "github.com/phillarmonic/psparam/internal/errors"
	"github.com/phillarmonic/psparam/internal/parser"
)

// Domain: CLI Application Structure
// This file contains the main CLI application setup with Cobra commands and flags

// ErrReported marks an error whose details were already written to stderr
var ErrReported = errors.New("error already reported")

// App represents the CLI application
type App struct {
	version string
	commit  string
	date    string

	rootCmd *cobra.Command

	// Flags
	configFile string
	file       string
	input      string
	format     string
	trace      string
}

// NewApp creates a new CLI application
func NewApp(version, commit, date string) *App {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	app.rootCmd = &cobra.Command{
		Use:   "psparam",
		Short: "Extract a parameter declaration from a script parameter block",
		Long: `psparam reads one attributed parameter declaration such as

  [Parameter(Mandatory=$true)] [string] $Name = $false

and reports its name, type, default value, mandatory flag, parameter set and help text.

Examples:
  psparam parse -f decl.ps1                  # Parse a declaration file
  psparam parse --input '[int] $Count'       # Parse a declaration string
  psparam parse -f decl.ps1 --format json    # Print the result as JSON
  psparam parse -f decl.ps1 --trace chars    # Trace the scanner on stderr
  psparam validate -f decl.ps1 42            # Check an argument against the declaration
  psparam types                              # List recognised type names`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	app.setupFlags()
	app.setupCommands()

	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// Command returns the root command
func (a *App) Command() *cobra.Command {
	return a.rootCmd
}

// setupFlags sets up all command-line flags
func (a *App) setupFlags() {
	flags := a.rootCmd.PersistentFlags()

	flags.StringVar(&a.configFile, "config", "", "Workspace config file (default: "+DefaultConfigFile+" if present)")
	flags.StringVarP(&a.file, "file", "f", "", "Declaration file ('-' reads stdin)")
	flags.StringVar(&a.input, "input", "", "Declaration text (instead of --file)")
	flags.StringVar(&a.format, "format", "", "Output format: yaml or json (default: yaml)")
	flags.StringVar(&a.trace, "trace", "", "Trace the scanner on stderr: log or chars")
}

// setupCommands sets up subcommands
func (a *App) setupCommands() {
	a.rootCmd.AddCommand(a.createParseCommand())
	a.rootCmd.AddCommand(a.createValidateCommand())
	a.rootCmd.AddCommand(a.createTypesCommand())
	a.rootCmd.AddCommand(a.createVersionCommand())
}

func (a *App) createParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Parse a parameter declaration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.resolveSettings(cmd)
			if err != nil {
				return err
			}
			p, err := a.parse(cmd, settings)
			if err != nil {
				return err
			}
			return debug.DumpParameter(cmd.OutOrStdout(), p, settings.Format)
		},
	}
}

func (a *App) createValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate VALUE",
		Short: "Check that VALUE can be bound to the declared parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.resolveSettings(cmd)
			if err != nil {
				return err
			}
			p, err := a.parse(cmd, settings)
			if err != nil {
				return err
			}
			if err := parameter.NewValidator().Validate(p, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: $%s (%s) accepts %q\n", p.Name, p.DataType, args[0])
			return nil
		},
	}
}

func (a *App) createTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the recognised type names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.resolveSettings(cmd)
			if err != nil {
				return err
			}
			return debug.DumpTypes(cmd.OutOrStdout(), settings.Format)
		},
	}
}

func (a *App) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ShowVersion(cmd.OutOrStdout(), a.version, a.commit, a.date)
		},
	}
}

// parse reads the declaration and runs the parser, reporting parse errors on stderr
func (a *App) parse(cmd *cobra.Command, settings Settings) (parameter.Parameter, error) {
	content, err := ReadDeclaration(a.file, a.input, cmd.InOrStdin())
	if err != nil {
		return parameter.Parameter{}, err
	}

	tracer, closeTracer, err := NewTracer(settings.Trace, cmd.ErrOrStderr())
	if err != nil {
		return parameter.Parameter{}, err
	}
	defer closeTracer()

	var opts []parser.Option
	if tracer != nil {
		opts = append(opts, parser.WithTracer(tracer))
	}

	p, err := parser.NewParser(opts...).Parse(content)
	if err != nil {
		var pe *perrors.ParseError
		if errors.As(err, &pe) {
			fmt.Fprint(cmd.ErrOrStderr(), pe.FormatError())
			return parameter.Parameter{}, fmt.Errorf("%w: %w", ErrReported, err)
		}
		return parameter.Parameter{}, err
	}
	return p, nil
}
