// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the graph store, decides which
// backend queries run against, and injects both into the tools, prompts
// and resources. No navigation logic lives here, only wiring.
package server

import (
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/notenav/internal/config"
	"github.com/HendryAvila/notenav/internal/logger"
	"github.com/HendryAvila/notenav/internal/navtools"
	"github.com/HendryAvila/notenav/internal/prompts"
	"github.com/HendryAvila/notenav/internal/resources"
	"github.com/HendryAvila/notenav/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openStore is a package-level var to allow test injection.
var openStore = store.New

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
//
// The returned cleanup function closes the graph store and must be called
// on shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	st, seeded, err := OpenStore(cfg)
	if err != nil {
		return nil, noop, err
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			logger.Logger.Warnw("graph store close failed", "error", err)
		}
	}

	s := server.NewMCPServer(
		"notenav",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register graph tools ---

	source := navtools.QuerySource(st, seeded)

	noteTool := navtools.NewNoteTool(st)
	s.AddTool(noteTool.Definition(), noteTool.Handle)

	relateTool := navtools.NewRelateTool(st)
	s.AddTool(relateTool.Definition(), relateTool.Handle)

	unrelateTool := navtools.NewUnrelateTool(st)
	s.AddTool(unrelateTool.Definition(), unrelateTool.Handle)

	queryTool := navtools.NewQueryTool(st, source, cfg.Query.MaxResults)
	s.AddTool(queryTool.Definition(), queryTool.Handle)

	exportTool := navtools.NewExportTool(st)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	// --- Register prompts ---

	explorePrompt := prompts.NewExplorePrompt()
	s.AddPrompt(explorePrompt.Definition(), explorePrompt.Handle)

	overviewPrompt := prompts.NewOverviewPrompt()
	s.AddPrompt(overviewPrompt.Definition(), overviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(st, cfg.Query.MaxResults)
	s.AddResource(resourceHandler.NotesResource(), resourceHandler.HandleNotes)
	s.AddResource(resourceHandler.BuiltinsResource(), resourceHandler.HandleBuiltins)

	logger.Logger.Infow("notenav server ready",
		"version", Version, "data_dir", cfg.Store.DataDir, "builtins_seeded", seeded)
	return s, cleanup, nil
}

// OpenStore opens the configured graph store and seeds the built-in
// taxonomy when the configuration asks for it. The returned flag reports
// whether the store now holds the built-in facts itself.
func OpenStore(cfg *config.Config) (*store.Store, bool, error) {
	st, err := openStore(cfg.StoreConfig())
	if err != nil {
		return nil, false, errors.Wrap(err, "opening graph store")
	}
	if !cfg.Store.SeedBuiltins {
		return st, false, nil
	}
	if _, err := st.SeedBuiltins(); err != nil {
		_ = st.Close()
		return nil, false, errors.Wrap(err, "seeding built-in taxonomy")
	}
	return st, true, nil
}

// noop is the cleanup returned when nothing was opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use notenav effectively.
func serverInstructions() string {
	return `You have access to notenav, a note graph you can navigate with path expressions.

## The Graph

Everything is a note, identified by a UUID and optionally named. Notes are
related along a few axes:
- types / instances: "rock is an instance of genre"
- supertypes / subtypes: "punk is a subtype of rock"
- associations:<role> / players:<role>: which associations a note plays a role in
- roles: which role notes an association has

A set of well-known notes (subject, topic, content, name, occurrence,
association, data-type, type, subtype, supertype, instance, role-type) and
the hierarchy between them always exists.

## Tools

- nav_note: create a note, or look one up by name or UUID
- nav_relate: connect source notes to destination notes along one step
- nav_unrelate: remove one edge by the id nav_relate reported
- nav_query: walk a path from anchor notes and list what it reaches
- nav_export: dump the whole graph as JSON

## Path Expressions

A path is a space-separated list of steps, applied left to right:
- types, instances, supertypes, subtypes, roles, loopback
- associations:<role>, players:<role>, traverse:<from-role>:<to-role>
- a "+" suffix walks the step transitively: "supertypes+"
- a "~" prefix reverses the step: "~types" is the same as "instances"
- a predicate keeps only notes whose sub-path reaches a given note:
  "instances [types has genre]"

Names with spaces are quoted: "instances [types has 'hard rock']".

## Workflow

1. Create notes with nav_note before relating them
2. Relate with nav_relate, for example sources=['punk'], step='supertypes', destinations=['rock']
3. Ask questions with nav_query, for example anchors=['rock'], path='subtypes+ instances'
4. Use with_paths=true when the user wants to see how a note was reached`
}
