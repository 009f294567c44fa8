package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "suplementos",
	Short: "Supplement catalog with AI-grounded search and stack generation",
	Long: `suplementos serves a catalog of supplements that can be filtered by
category, goal and effect, extended with web-grounded AI searches, and used to
generate supplement stacks for a goal.

Run without a subcommand to start the Connect API server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Connect API server",
	RunE:  runServe,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one AI search and print the records it would add",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var stackCmd = &cobra.Command{
	Use:   "stack [goal]",
	Short: "Generate a supplement stack for a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStack,
}

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the distinct positive effects of the local catalog",
	RunE:  runEffects,
}

var rebuildIndexCmd = &cobra.Command{
	Use:   "rebuild-index",
	Short: "Rebuild the Meilisearch mirror from the local catalog",
	RunE:  runRebuildIndex,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, searchCmd, stackCmd, effectsCmd, rebuildIndexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// deps is everything a command needs, built from the config
type deps struct {
	cfg      Config
	log      *zap.Logger
	app      *App
	registry *prometheus.Registry
	indexer  *meiliIndexer
	db       *sql.DB
}

func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.LogMode, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &deps{cfg: cfg, log: log, registry: prometheus.NewRegistry()}
	metrics := NewMetrics(rt.registry)
	opts := []Option{WithMetrics(metrics)}

	if cfg.DatabaseURL != "" {
		db, err := connectDB(cfg.DatabaseURL)
		if err != nil {
			log.Warn("search log disabled, database unreachable", zap.Error(err))
		} else if sl, err := newSearchLog(ctx, db); err != nil {
			log.Warn("search log disabled", zap.Error(err))
			db.Close()
		} else {
			log.Info("search log connected")
			rt.db = db
			opts = append(opts, WithRecorder(sl))
		}
	}
	if ix := newMeiliIndexer(cfg.Meili, log); ix != nil {
		rt.indexer = ix
		opts = append(opts, WithIndexer(ix))
	}

	gemini := NewGeminiAdapter(ctx, cfg.AI, log, metrics)
	rt.app = NewApp(gemini, gemini, log, opts...)
	return rt, nil
}

func (rt *deps) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
	_ = rt.log.Sync()
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	path, handler := newCatalogHandler(rt.app, rt.log)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders:   []string{"Grpc-Status", "Grpc-Message"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	srv := &http.Server{
		Addr:              rt.cfg.Addr,
		Handler:           h2c.NewHandler(corsHandler.Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.log.Info("Connect API listening", zap.String("addr", rt.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runSearch(cmd *cobra.Command, args []string) error {
	rt, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	added, err := rt.app.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	view := rt.app.View()
	return printJSON(map[string]interface{}{
		"added":   added,
		"sources": view.Sources,
		"total":   view.Total,
	})
}

func runStack(cmd *cobra.Command, args []string) error {
	rt, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	stack, err := rt.app.GenerateStack(cmd.Context(), strings.Join(args, " "))
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		fmt.Fprintln(os.Stderr, genErr.Message)
		return err
	}
	if err != nil {
		return err
	}
	return printJSON(stack)
}

func runEffects(cmd *cobra.Command, args []string) error {
	for _, e := range DistinctEffects(seedSupplements()) {
		fmt.Println(e)
	}
	return nil
}

func runRebuildIndex(cmd *cobra.Command, args []string) error {
	rt, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.indexer == nil {
		return errors.New("MEILI_URL is not configured")
	}
	records := rt.app.Supplements()
	if err := rt.indexer.Rebuild(cmd.Context(), records); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}
	fmt.Printf("Index rebuild complete: %d supplements indexed into %q\n", len(records), rt.cfg.Meili.Index)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
