// Command dealit is a terminal deal browser for a headless-CMS coupon
// catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/daptify14/dealit/internal/cms"
	dealitconfig "github.com/daptify14/dealit/internal/config"
	"github.com/daptify14/dealit/internal/search"
	"github.com/daptify14/dealit/internal/sticky"
	"github.com/daptify14/dealit/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errNoSource = errors.New("no catalog source configured (run `dealit init` or set " + dealitconfig.EnvCMSURL + ")")

// app carries the flags and resources shared by every subcommand.
type app struct {
	configPath string

	debugLog   *slog.Logger
	closeDebug func()
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		a.close()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dealit",
		Short: "Terminal deal browser",
		Long:  "dealit browses the merchants and coupons of a headless CMS from the terminal. The merchant sidebar follows the deal feed as you scroll.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.openDebugLog()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI("")
		},
		SilenceUsage: true,
	}
	rootCmd.Version = version + " (commit " + commit + ", built " + date + ")"
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", dealitconfig.DefaultPath(), "config file path")

	tabCommands := []struct {
		use   string
		short string
		tab   string
	}{
		{"deals", "Open directly to the Deals tab", "Deals"},
		{"merchants", "Open directly to the Merchants tab", "Merchants"},
	}

	for _, tc := range tabCommands {
		tab := tc.tab
		rootCmd.AddCommand(&cobra.Command{
			Use:   tc.use,
			Short: tc.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTUI(tab)
			},
		})
	}

	rootCmd.AddCommand(
		a.searchCommand(),
		a.inspectCommand(),
		a.initCommand(),
	)
	return rootCmd
}

func (a *app) openDebugLog() error {
	debugPath := os.Getenv("DEALIT_DEBUG")
	if debugPath == "" || a.debugLog != nil {
		return nil
	}
	cleanPath := filepath.Clean(debugPath)
	f, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //#nosec G304 -- developer-controlled debug log path
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	a.debugLog = slog.New(slog.NewJSONHandler(f, nil))
	a.closeDebug = func() { _ = f.Close() }
	return nil
}

func (a *app) close() {
	if a.closeDebug != nil {
		a.closeDebug()
		a.closeDebug = nil
	}
}

func (a *app) loadConfig() (dealitconfig.Config, error) {
	cfg, err := dealitconfig.LoadFrom(a.configPath)
	if err != nil {
		return cfg, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// source picks the catalog source: fixture files when fixtures_dir is set,
// the CMS API otherwise. The client is nil in offline mode.
func (a *app) source(cfg dealitconfig.Config) (cms.Source, *cms.Client, error) {
	if cfg.Offline() {
		return cms.NewDirSource(cfg.FixturesDir), nil, nil
	}
	if cfg.CMSURL == "" {
		return nil, nil, errNoSource
	}
	client := cms.New(
		cms.WithBaseURL(cfg.CMSURL),
		cms.WithToken(cfg.APIToken),
		cms.WithTimeout(cfg.Timeout),
		cms.WithPageSize(cfg.PageSize),
	)
	return client, client, nil
}

func (a *app) service(src cms.Source) *cms.Service {
	var opts []cms.ServiceOption
	if a.debugLog != nil {
		opts = append(opts, cms.WithLogger(a.debugLog))
	}
	return cms.NewService(src, opts...)
}

func (a *app) runTUI(initialTab string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	src, _, err := a.source(cfg)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Service:     a.service(src),
		PanelMode:   cfg.Panel,
		InitialTab:  initialTab,
		SearchLimit: cfg.SearchLimit,
		LoadTimeout: cfg.Timeout,
		Sticky: sticky.Options{
			TopOffset:    float64(cfg.Sticky.TopOffset),
			BottomOffset: float64(cfg.Sticky.BottomOffset),
		},
		DebugLog: a.debugLog,
	}

	model := tui.NewModel(opts)
	defer model.Close()
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error: %w", err)
	}
	return nil
}

func (a *app) loadCatalog(ctx context.Context) (*cms.Catalog, dealitconfig.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	src, _, err := a.source(cfg)
	if err != nil {
		return nil, cfg, err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*cfg.Timeout)
	defer cancel()
	cat, err := a.service(src).Load(ctx)
	if err != nil {
		return nil, cfg, err
	}
	return cat, cfg, nil
}

func (a *app) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Print merchants matching a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, cfg, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			idx := search.New(cat.SearchRecords(), search.WithLimit(cfg.SearchLimit))
			return printMatches(cmd.OutOrStdout(), idx.Search(strings.Join(args, " ")))
		},
	}
}

func printMatches(w io.Writer, matches []search.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No merchants found")
		return err
	}
	width := 0
	for _, m := range matches {
		width = max(width, len(m.Name))
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, m.Name, m.Slug); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) inspectCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "inspect <slug>",
		Short: "Print the normalized JSON of one merchant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merchant, coupons, err := a.fetchMerchant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := tui.MarshalMerchant(merchant, coupons)
			if err != nil {
				return err
			}
			if !plain {
				doc = tui.Highlight(doc, "merchant.json")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")
	return cmd
}

// fetchMerchant asks the CMS for a single merchant when online and reads
// it from the fixture catalog otherwise.
func (a *app) fetchMerchant(ctx context.Context, slug string) (cms.Merchant, []cms.Coupon, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return cms.Merchant{}, nil, err
	}
	src, client, err := a.source(cfg)
	if err != nil {
		return cms.Merchant{}, nil, err
	}
	if client != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*cfg.Timeout)
		defer cancel()
		return client.Merchant(ctx, slug)
	}

	cat, err := a.service(src).Load(ctx)
	if err != nil {
		return cms.Merchant{}, nil, err
	}
	m, ok := cat.Merchant(slug)
	if !ok {
		return cms.Merchant{}, nil, fmt.Errorf("merchant %q: %w", slug, cms.ErrNotFound)
	}
	return m, cat.CouponsFor(slug), nil
}
