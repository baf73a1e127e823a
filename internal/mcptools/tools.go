// Package mcptools exposes read-only manifest lookups as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quantmind-br/docmanifest-go/internal/content"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/manifest"
)

// RegisterTools adds the manifest lookup tools to the MCP server.
func RegisterTools(s *server.MCPServer, idx *manifest.Index) {
	s.AddTool(pageTool(), pageHandler(idx))
	s.AddTool(childrenTool(), childrenHandler(idx))
	s.AddTool(breadcrumbsTool(), breadcrumbsHandler(idx))
	s.AddTool(nextTool(), sequenceHandler(idx, idx.NextPage))
	s.AddTool(prevTool(), sequenceHandler(idx, idx.PreviousPage))
	s.AddTool(versionsTool(), versionsHandler(idx))
	s.AddTool(entitiesTool(), entitiesHandler(idx))
}

// PageView is the JSON shape of a resolved page or folder
type PageView struct {
	URL      string      `json:"url"`
	Link     string      `json:"link"`
	Title    string      `json:"title"`
	Summary  string      `json:"summary,omitempty"`
	Kind     domain.Kind `json:"type"`
	Filepath string      `json:"filepath"`
	Entity   string      `json:"entity"`
	Language string      `json:"language"`
	Version  string      `json:"version,omitempty"`
}

// NewPageView flattens c for output
func NewPageView(c content.Content) PageView {
	e := c.Entity()
	return PageView{
		URL:      c.RelativeLink(),
		Link:     c.Link(),
		Title:    c.Title(),
		Summary:  c.Summary(),
		Kind:     c.Kind(),
		Filepath: c.Filepath(),
		Entity:   e.Key,
		Language: e.Language,
		Version:  e.Version,
	}
}

// --- page ---

func pageTool() mcp.Tool {
	return mcp.NewTool("page",
		mcp.WithDescription("Resolve a documentation URL to its page or folder: title, summary, file path and owning entity."),
		mcp.WithString("url",
			mcp.Description("Manifest URL without the link base, e.g. en/getting-started/"),
			mcp.Required(),
		),
	)
}

func pageHandler(idx *manifest.Index) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := req.GetString("url", "")

		c, err := idx.GetPage(ctx, url)
		if err != nil {
			return toolError(err)
		}
		if c == nil {
			return notFound(url)
		}
		return jsonResult(NewPageView(c))
	}
}

// --- children ---

func childrenTool() mcp.Tool {
	return mcp.NewTool("children",
		mcp.WithDescription("List the direct children of a manifest URL or an absolute file path, in manifest order. A page lists its siblings with itself marked current."),
		mcp.WithString("path",
			mcp.Description("Manifest URL (en/guides/) or absolute path inside an entity root"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("Levels of folders to expand (1 = direct children only, 0 = everything)"),
		),
	)
}

func childrenHandler(idx *manifest.Index) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		depth := req.GetInt("depth", 1)
		if depth < 0 {
			return toolError(fmt.Errorf("depth must not be negative"))
		}

		children, err := idx.DescendantsOf(ctx, path, depth)
		if err != nil {
			return toolError(err)
		}
		if len(children) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}
		return jsonResult(children)
	}
}

// --- breadcrumbs ---

func breadcrumbsTool() mcp.Tool {
	return mcp.NewTool("breadcrumbs",
		mcp.WithDescription("Breadcrumb trail from the owning entity root to a page."),
		mcp.WithString("url",
			mcp.Description("Manifest URL of the page"),
			mcp.Required(),
		),
	)
}

func breadcrumbsHandler(idx *manifest.Index) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := req.GetString("url", "")

		c, err := idx.GetPage(ctx, url)
		if err != nil {
			return toolError(err)
		}
		if c == nil {
			return notFound(url)
		}
		return jsonResult(idx.Breadcrumbs(c, c.Entity()))
	}
}

// --- next / prev ---

func nextTool() mcp.Tool {
	return mcp.NewTool("next",
		mcp.WithDescription("The manifest entry following the given file."),
		mcp.WithString("filepath",
			mcp.Description("Absolute path of the current document"),
			mcp.Required(),
		),
	)
}

func prevTool() mcp.Tool {
	return mcp.NewTool("prev",
		mcp.WithDescription("The manifest entry preceding the given file."),
		mcp.WithString("filepath",
			mcp.Description("Absolute path of the current document"),
			mcp.Required(),
		),
	)
}

type sequenceFunc func(ctx context.Context, path string) (*domain.PageRecord, error)

func sequenceHandler(idx *manifest.Index, step sequenceFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("filepath", "")
		if path == "" {
			return toolError(fmt.Errorf("filepath is required"))
		}

		rec, err := step(ctx, path)
		if err != nil {
			return toolError(err)
		}
		if rec == nil {
			return mcp.NewToolResultText("No results."), nil
		}
		return jsonResult(rec)
	}
}

// --- versions ---

func versionsTool() mcp.Tool {
	return mcp.NewTool("versions",
		mcp.WithDescription("Versions and languages of the entity owning a URL, and its stable version."),
		mcp.WithString("url",
			mcp.Description("Manifest URL of any page of the entity"),
			mcp.Required(),
		),
	)
}

// VersionsView is the JSON shape of the versions tool
type VersionsView struct {
	Versions  []domain.VersionLink `json:"versions"`
	Stable    *domain.Entity       `json:"stable"`
	Languages []*domain.Entity     `json:"languages"`
}

func versionsHandler(idx *manifest.Index) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := req.GetString("url", "")

		c, err := idx.GetPage(ctx, url)
		if err != nil {
			return toolError(err)
		}
		if c == nil {
			return notFound(url)
		}

		e := c.Entity()
		return jsonResult(VersionsView{
			Versions:  idx.Versions(e),
			Stable:    idx.StableVersion(e),
			Languages: idx.Languages(e),
		})
	}
}

// --- entities ---

func entitiesTool() mcp.Tool {
	return mcp.NewTool("entities",
		mcp.WithDescription("List the registered documentation entities in registry order."),
	)
}

func entitiesHandler(idx *manifest.Index) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entities := idx.Entities()
		if len(entities) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}
		return jsonResult(entities)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func notFound(url string) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf("No page at %s", manifest.NormalizeURL(url))), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
