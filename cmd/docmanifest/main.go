package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/quantmind-br/docmanifest-go/internal/app"
	"github.com/quantmind-br/docmanifest-go/internal/config"
	"github.com/quantmind-br/docmanifest-go/internal/content"
	"github.com/quantmind-br/docmanifest-go/internal/domain"
	"github.com/quantmind-br/docmanifest-go/internal/manifest"
	"github.com/quantmind-br/docmanifest-go/internal/utils"
	"github.com/quantmind-br/docmanifest-go/pkg/version"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool
	noCache    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docmanifest",
	Short: "Index documentation trees into a navigable manifest",
	Long: `DocManifest walks registered documentation roots, one per language and
version, and builds an ordered manifest of every page and folder.

The manifest is cached between runs and answers URL lookups, breadcrumbs,
sequential navigation, child listings and version switching.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.docmanifest/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().String("base-path", config.DefaultBasePath, "Installation root holding the documentation")
	rootCmd.PersistentFlags().String("link-base", config.DefaultLinkBase, "Link prefix of every documentation URL")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the manifest cache")

	// Bind flags to viper
	_ = viper.BindPFlag("base_path", rootCmd.PersistentFlags().Lookup("base-path"))
	_ = viper.BindPFlag("link_base", rootCmd.PersistentFlags().Lookup("link-base"))

	buildCmd.Flags().Bool("force", false, "Ignore the cached manifest")
	buildCmd.Flags().Bool("no-persist", false, "Build without replacing the cached manifest")
	buildCmd.Flags().Bool("progress", false, "Show a progress bar while walking entities")
	childrenCmd.Flags().IntP("depth", "d", 1, "Folder levels to expand (0 = everything)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(childrenCmd)
	rootCmd.AddCommand(breadcrumbsCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(entitiesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext(log *utils.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// session is one loaded orchestrator plus its cancellable context
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	orch   *app.Orchestrator
}

func (s *session) Close() {
	s.cancel()
	if err := s.orch.Close(); err != nil {
		s.orch.Logger().Warn().Err(err).Msg("Failed to close cache")
	}
}

func openSession(cmd *cobra.Command, opts app.OrchestratorOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	opts.Config = cfg
	opts.Verbose = verbose
	opts.LogOutput = cmd.ErrOrStderr()

	orch, err := app.NewOrchestrator(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := signalContext(orch.Logger())
	return &session{ctx: ctx, cancel: cancel, orch: orch}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- init ---

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a default config file",
	Long: `Writes the default configuration as YAML, to ~/.docmanifest/config.yaml
unless a file is given, and creates the cache directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		log := utils.NewDefaultLogger()
		if verbose {
			log = utils.NewVerboseLogger()
		}

		path := config.ConfigFilePath()
		if len(args) == 1 {
			path = args[0]
		} else if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		if err := config.EnsureCacheDir(); err != nil {
			log.Warn().Err(err).Msg("Failed to create cache directory")
		}

		log.Debug().Str("path", path).Msg("Config written")
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

// --- build ---

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Walk every entity and rebuild the manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		noPersist, _ := cmd.Flags().GetBool("no-persist")
		showProgress, _ := cmd.Flags().GetBool("progress")

		opts := app.OrchestratorOptions{ForceRegen: force}
		var bar *progressbar.ProgressBar
		if showProgress {
			opts.Progress = func(done, total int, e *domain.Entity) {
				if bar == nil {
					bar = utils.NewProgressBarTo(cmd.ErrOrStderr(), total, utils.DescIndexing)
				}
				bar.Describe(fmt.Sprintf("%s %s/%s", utils.DescIndexing, e.Key, e.Language))
				_ = bar.Set(done)
			}
		}

		s, err := openSession(cmd, opts)
		if err != nil {
			return err
		}
		defer s.Close()

		m, stats, err := s.orch.Build(s.ctx, !noPersist)
		if bar != nil {
			_ = bar.Finish()
			fmt.Fprintln(cmd.ErrOrStderr())
		}
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), stats)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d entries (%d pages, %d folders) from %d entities in %s\n",
			m.Len(), stats.Pages, stats.Folders, stats.Entities, stats.Duration.Round(time.Millisecond))
		if stats.Overwritten > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries replaced a duplicate URL\n", stats.Overwritten)
		}
		if stats.Persisted {
			fmt.Fprintln(cmd.OutOrStdout(), "Manifest cached")
		}
		return nil
	},
}

// --- page ---

var pageCmd = &cobra.Command{
	Use:   "page <url>",
	Short: "Resolve a URL to its page or folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.orch.Index().GetPage(s.ctx, args[0])
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("no page at %s", manifest.NormalizeURL(args[0]))
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), content.Record(c))
		}
		printContent(cmd.OutOrStdout(), c)
		return nil
	},
}

func printContent(w io.Writer, c content.Content) {
	e := c.Entity()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", c.Title())
	fmt.Fprintf(tw, "Type:\t%s\n", c.Kind())
	fmt.Fprintf(tw, "Link:\t%s\n", c.Link())
	fmt.Fprintf(tw, "File:\t%s\n", c.Filepath())
	fmt.Fprintf(tw, "Entity:\t%s (%s %s)\n", e.Title, e.Language, versionLabel(e))
	if summary := c.Summary(); summary != "" {
		fmt.Fprintf(tw, "Summary:\t%s\n", summary)
	}
	_ = tw.Flush()
}

func versionLabel(e *domain.Entity) string {
	label := e.Version
	if label == "" {
		label = "unversioned"
	}
	if e.IsStable {
		label += ", stable"
	}
	return label
}

// --- children ---

var childrenCmd = &cobra.Command{
	Use:   "children <url|path>",
	Short: "List the children of a URL or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")
		if depth < 0 {
			return fmt.Errorf("--depth must not be negative")
		}

		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		children, err := s.orch.Index().DescendantsOf(s.ctx, args[0], depth)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), children)
		}
		if len(children) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results.")
			return nil
		}
		printChildren(cmd.OutOrStdout(), children, 0)
		return nil
	},
}

func printChildren(w io.Writer, children []domain.Child, level int) {
	indent := strings.Repeat("  ", level)
	for _, c := range children {
		marker := " "
		if c.Mode == domain.ModeCurrent {
			marker = "*"
		}
		suffix := ""
		if c.Kind == domain.KindFolder {
			suffix = "/"
		}
		fmt.Fprintf(w, "%s%s %s%s  %s\n", indent, marker, c.Title, suffix, c.Link)
		printChildren(w, c.Children, level+1)
	}
}

// --- breadcrumbs ---

var breadcrumbsCmd = &cobra.Command{
	Use:   "breadcrumbs <url>",
	Short: "Show the breadcrumb trail of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		idx := s.orch.Index()
		c, err := idx.GetPage(s.ctx, args[0])
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("no page at %s", manifest.NormalizeURL(args[0]))
		}

		crumbs := idx.Breadcrumbs(c, c.Entity())
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), crumbs)
		}
		titles := make([]string, 0, len(crumbs))
		for _, crumb := range crumbs {
			titles = append(titles, crumb.Title)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(titles, " > "))
		return nil
	},
}

// --- next / prev ---

var nextCmd = &cobra.Command{
	Use:   "next <file>",
	Short: "Show the manifest entry after a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSequence(cmd, args[0], (*manifest.Index).NextPage)
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev <file>",
	Short: "Show the manifest entry before a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSequence(cmd, args[0], (*manifest.Index).PreviousPage)
	},
}

type sequenceFunc func(idx *manifest.Index, ctx context.Context, path string) (*domain.PageRecord, error)

func runSequence(cmd *cobra.Command, file string, step sequenceFunc) error {
	s, err := openSession(cmd, app.OrchestratorOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	path := utils.ExpandPath(file)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	rec, err := step(s.orch.Index(), s.ctx, path)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), rec)
	}
	if rec == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No results.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", rec.Title, utils.JoinLinks("/", s.orch.Config().LinkBase, rec.URL, "/"))
	return nil
}

// --- versions ---

var versionsCmd = &cobra.Command{
	Use:   "versions <url>",
	Short: "List versions and languages of the entity owning a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		idx := s.orch.Index()
		c, err := idx.GetPage(s.ctx, args[0])
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("no page at %s", manifest.NormalizeURL(args[0]))
		}

		e := c.Entity()
		versions := idx.Versions(e)
		languages := idx.Languages(e)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"versions":  versions,
				"stable":    idx.StableVersion(e),
				"languages": languages,
			})
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, v := range versions {
			marker := " "
			if v.Mode == domain.ModeCurrent {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, v.Version, v.Title, v.Link)
		}
		_ = tw.Flush()

		langs := make([]string, 0, len(languages))
		for _, l := range languages {
			langs = append(langs, l.Language)
		}
		sort.Strings(langs)
		fmt.Fprintf(cmd.OutOrStdout(), "Languages: %s\n", strings.Join(langs, ", "))
		return nil
	},
}

// --- entities ---

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List registered documentation entities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		entities := s.orch.Index().Entities()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entities)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tLANG\tVERSION\tLINK\tROOT")
		for _, e := range entities {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Key, e.Language, versionLabel(e), e.Link(), e.RootPath)
		}
		return tw.Flush()
	},
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the manifest to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		m, err := s.orch.Index().Pages(s.ctx)
		if err != nil {
			return err
		}
		if err := manifest.WriteFile(args[0], m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", m.Len(), args[0])
		return nil
	},
}

// --- cache ---

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the manifest cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache backend statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		stats := s.orch.CacheStats()
		if stats == nil {
			return fmt.Errorf("cache is disabled")
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), stats)
		}

		keys := make([]string, 0, len(stats))
		for k := range stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, k := range keys {
			fmt.Fprintf(tw, "%s:\t%v\n", k, stats[k])
		}
		return tw.Flush()
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, app.OrchestratorOptions{})
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.orch.ClearCache(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
		return nil
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
