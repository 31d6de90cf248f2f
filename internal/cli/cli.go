package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specialistvlad/appregister/discovery"
	"github.com/specialistvlad/appregister/internal/app"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// APPREGISTER_LOG_LEVEL for --log-level.
const EnvPrefix = "APPREGISTER"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Option configures the root command.
type Option func(*root)

// WithLoader makes every command run against loader instead of the plugin
// loader built from the manifest.
func WithLoader(loader discovery.ComponentLoader) Option {
	return func(r *root) {
		r.loader = loader
	}
}

// root carries what the subcommands share.
type root struct {
	v      *viper.Viper
	errW   io.Writer
	loader discovery.ComponentLoader
	app    *app.App
}

// NewRootCmd builds the appregister command tree. Command output goes to
// outW, log records to errW.
func NewRootCmd(outW, errW io.Writer, opts ...Option) *cobra.Command {
	r := &root{v: viper.New(), errW: errW}
	for _, opt := range opts {
		opt(r)
	}

	cmd := &cobra.Command{
		Use:   "appregister",
		Short: "Inspect component registrations",
		Long: `appregister loads a host manifest, discovers the registration submodules
of the components it declares and reports what they registered.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				slog.Error("Error displaying help", "error", err)
			}
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", app.DefaultManifestPath, "Path to the manifest file or a directory of .hcl files.")
	flags.StringP("module", "m", "", "Discovery submodule. Overrides the manifest.")
	flags.String("log-level", "info", "Set the logging level. Options: "+strings.Join(app.LogLevels, ", ")+".")
	flags.String("log-format", "text", "Log output format. Options: "+strings.Join(app.LogFormats, ", ")+".")
	flags.Bool("builtin", false, "Scan the components compiled into the binary instead of the manifest's plugins.")
	for _, name := range []string{"config", "module", "log-level", "log-format", "builtin"} {
		if err := r.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}
	r.v.SetEnvPrefix(EnvPrefix)
	r.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.v.AutomaticEnv()

	cmd.AddCommand(
		r.componentsCmd(),
		r.discoverCmd(),
		r.typesCmd(),
		versionCmd(),
	)
	return cmd
}

// config builds the app configuration from flags and environment.
func (r *root) config() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: r.v.GetString("config"),
		Module:       r.v.GetString("module"),
		LogLevel:     r.v.GetString("log-level"),
		LogFormat:    r.v.GetString("log-format"),
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.", "config", cfg)
	return cfg, nil
}

// setup is the PersistentPreRunE of commands that need the app.
func (r *root) setup(*cobra.Command, []string) error {
	cfg, err := r.config()
	if err != nil {
		return err
	}
	loader := r.loader
	if loader == nil && r.v.GetBool("builtin") {
		loader = discovery.DefaultCatalog
	}
	a, err := app.NewApp(r.errW, cfg, loader)
	if err != nil {
		return err
	}
	r.app = a
	return nil
}

// discoveryError reports a failed scan. Results up to the failure have
// already been printed.
func discoveryError(module string, err error) error {
	if errors.Is(err, discovery.ErrEmptySubmodule) {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return fmt.Errorf("discovery of %q failed: %w", module, err)
}
