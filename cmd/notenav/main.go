// notenav: a navigable note graph served over MCP.
//
// Usage:
//
//	notenav serve                          # Start MCP server (stdio transport)
//	notenav query rock --path 'subtypes+'  # Run one navigation query
//	notenav load graph.yaml                # Load notes and triples from YAML
//	notenav export > dump.json             # Dump the graph as JSON
//	notenav import dump.json               # Load a JSON dump
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HendryAvila/notenav/internal/config"
	"github.com/HendryAvila/notenav/internal/logger"
	navserver "github.com/HendryAvila/notenav/internal/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the configuration resolved before any subcommand runs.
type app struct {
	configPath string
	cfg        *config.Config
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "notenav",
		Short: "Navigable note graph",
		Long: `notenav stores notes and the typed relationships between them, and
answers path queries over that graph.

It provides:
- An MCP server (stdio) exposing note, relate, query and export tools
- One-shot queries from the command line
- YAML triple loading and JSON export/import`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.loadConfig(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (TOML)")
	flags.String("data-dir", "", "Directory holding graph.db (default ~/.notenav)")
	flags.Bool("log-json", false, "Log JSON to stderr")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.serveCmd(),
		a.queryCmd(),
		a.loadCmd(),
		a.exportCmd(),
		a.importCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "notenav v%s\n", navserver.Version)
			},
		},
	)

	return cmd
}

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"data-dir":  "store.data_dir",
	"log-json":  "log.json",
	"log-level": "log.level",
}

// loadConfig resolves defaults, the config file, NOTENAV_* variables and
// explicitly set flags, then initializes the logger.
func (a *app) loadConfig(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	a.cfg = cfg
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding --%s", flag)
		}
	}
	return nil
}
