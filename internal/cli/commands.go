package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (r *root) componentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "components",
		Short:             "List the components and the submodules they carry",
		Args:              cobra.NoArgs,
		PersistentPreRunE: r.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := r.app.Components()
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "NAME\tLOCATION\tSUBMODULES")
			for _, info := range infos {
				name := info.Name
				if name == "" {
					name = "-"
				}
				subs := strings.Join(info.Submodules, ",")
				if subs == "" {
					subs = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, info.Location, subs)
			}
			return tw.Flush()
		},
	}
}

func (r *root) discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "discover [module]",
		Short:             "Import a submodule from every component",
		Long:              "Import a submodule from every component, in manifest order, and print the outcome per component.",
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: r.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			var module string
			if len(args) == 1 {
				module = args[0]
			}
			module = r.app.Module(module)
			results, scanErr := r.app.Discover(module)

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "COMPONENT\tSUBMODULE\tSTATUS")
			for _, res := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", res.Location, res.Submodule, res.Status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if scanErr != nil {
				return discoveryError(module, scanErr)
			}
			return nil
		},
	}
}

func (r *root) typesCmd() *cobra.Command {
	var skipDiscovery bool
	cmd := &cobra.Command{
		Use:               "types",
		Short:             "List published type paths",
		Long:              "Run discovery, then list every type path published by the imported submodules.",
		Args:              cobra.NoArgs,
		PersistentPreRunE: r.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !skipDiscovery {
				module := r.app.Module("")
				if _, err := r.app.Discover(module); err != nil {
					return discoveryError(module, err)
				}
			}
			for _, path := range r.app.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipDiscovery, "no-discover", false, "List what is published without running discovery first.")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			goVersion := runtime.Version()
			if info, ok := debug.ReadBuildInfo(); ok && info.GoVersion != "" {
				goVersion = info.GoVersion
			}
			fmt.Fprintf(cmd.OutOrStdout(), "appregister %s (%s, %s/%s)\n", Version, goVersion, runtime.GOOS, runtime.GOARCH)
		},
	}
}
