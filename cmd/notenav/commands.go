package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/notenav/internal/loader"
	"github.com/HendryAvila/notenav/internal/logger"
	"github.com/HendryAvila/notenav/internal/navtools"
	navserver "github.com/HendryAvila/notenav/internal/server"
	"github.com/HendryAvila/notenav/internal/store"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := navserver.New(a.cfg)
			if err != nil {
				return errors.Wrap(err, "creating server")
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stdio := server.NewStdioServer(s)
			if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Logger.Infow("server stopped")
			return nil
		},
	}
}

func (a *app) queryCmd() *cobra.Command {
	var (
		expr      string
		withPaths bool
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "query <anchor>...",
		Short: "Navigate from the anchor notes along a path",
		Example: `  notenav query rock --path 'subtypes+ instances'
  notenav query alice --path 'types supertypes+' --paths`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store, seeded bool) error {
				tool := navtools.NewQueryTool(st, navtools.QuerySource(st, seeded), a.cfg.Query.MaxResults)
				out, err := tool.Query(cmd.Context(), args, expr, withPaths, limit)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&expr, "path", "p", "", "Path expression (empty returns the anchors)")
	cmd.Flags().BoolVar(&withPaths, "paths", false, "Show every hop for each result")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default: query.max_results)")
	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.yaml>",
		Short: "Create the notes and triples listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(st *store.Store, _ bool) error {
				res, err := loader.Apply(st, g)
				if err != nil {
					return errors.Wrapf(err, "loading %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: %d notes created, %d triples added\n",
					args[0], res.NotesCreated, res.TriplesAdded)
				return nil
			})
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every note and edge as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store, _ bool) error {
				data, err := st.Export()
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			})
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dump.json>",
		Short: "Load a JSON dump written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading dump")
			}
			var data store.ExportData
			if err := json.Unmarshal(raw, &data); err != nil {
				return errors.Wrapf(err, "parsing %s", args[0])
			}
			return a.withStore(func(st *store.Store, _ bool) error {
				res, err := st.Import(&data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d notes, %d edges\n",
					args[0], res.NotesImported, res.EdgesImported)
				return nil
			})
		},
	}
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(fn func(st *store.Store, seeded bool) error) error {
	st, seeded, err := navserver.OpenStore(a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Logger.Warnw("graph store close failed", "error", err)
		}
	}()
	return fn(st, seeded)
}
