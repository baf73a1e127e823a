package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quantmind-br/docmanifest-go/internal/app"
	"github.com/quantmind-br/docmanifest-go/internal/config"
	"github.com/quantmind-br/docmanifest-go/internal/mcptools"
	"github.com/quantmind-br/docmanifest-go/pkg/version"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default is ~/.docmanifest/config.yaml)")
	baseFlag := flag.String("base-path", "", "installation root holding the documentation")
	verbose := flag.Bool("v", false, "verbose logging on stderr")
	flag.Parse()

	if err := run(*cfgFlag, *baseFlag, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "%s-mcp: %v\n", version.Name, err)
		os.Exit(1)
	}
}

func run(cfgFile, basePath string, verbose bool) error {
	cfg, _, err := config.LoadWithViper(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if basePath != "" {
		cfg.BasePath = basePath
	}

	ctx := context.Background()
	orch, err := app.NewOrchestrator(ctx, app.OrchestratorOptions{
		Config:    cfg,
		Verbose:   verbose,
		LogOutput: os.Stderr,
	})
	if err != nil {
		return err
	}
	defer orch.Close()

	idx := orch.Index()
	m, err := idx.Pages(ctx)
	if err != nil {
		return err
	}
	orch.Logger().Info().
		Int("entries", m.Len()).
		Int("entities", len(idx.Entities())).
		Msg("Manifest ready")

	mcpServer := server.NewMCPServer(
		version.Name+"-mcp",
		version.Short(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcptools.RegisterTools(mcpServer, idx)

	return server.ServeStdio(mcpServer)
}
