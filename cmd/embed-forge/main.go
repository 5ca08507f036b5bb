// Package main provides the CLI entry point for embed-forge.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	appconfig "github.com/lepinkainen/embed-forge/internal/config"
	"github.com/lepinkainen/embed-forge/internal/server"
	"github.com/lepinkainen/embed-forge/pkg/cards"
	"github.com/lepinkainen/embed-forge/pkg/config"
	httputil "github.com/lepinkainen/embed-forge/pkg/http"
	"github.com/lepinkainen/embed-forge/pkg/oembed"
	"github.com/lepinkainen/embed-forge/pkg/preview"
	"github.com/lepinkainen/embed-forge/pkg/render"
	"github.com/lepinkainen/embed-forge/pkg/shortcode"
	"github.com/lepinkainen/embed-forge/pkg/site"
	"github.com/lepinkainen/embed-forge/pkg/transient"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// CLI structure
var CLI struct {
	Config  string `help:"Configuration file path" default:"config.yaml"`
	Debug   bool   `help:"Enable debug logging" default:"false"`
	Backend string `help:"Override the cache backend (memory, sqlite, redis)"`

	Render struct {
		Source  string `arg:"" help:"Post document (JSON or YAML), URL, or - for stdin"`
		Content bool   `help:"Treat the source as raw post content instead of a post document"`
	} `cmd:"render" help:"Expand shortcodes and embed URLs in a post."`

	Embed struct {
		URL  string `arg:"" help:"Tweet, timeline, Moment, Vine or Periscope URL"`
		Lang string `help:"Widget language"`
	} `cmd:"embed" help:"Render a single embed URL."`

	Params struct {
		URL string `arg:"" help:"Tweet, timeline, Moment, Vine or Periscope URL"`
	} `cmd:"params" help:"Show the oEmbed parameters and data attributes of an embed URL."`

	Cards struct {
		Source string `arg:"" help:"Post document (JSON or YAML), URL, or - for stdin"`
	} `cmd:"cards" help:"Print the Twitter Card meta tags for a post."`

	Preview struct {
		Source  string `arg:"" help:"Post document (JSON or YAML), URL, or - for stdin"`
		Content bool   `help:"Treat the source as raw post content instead of a post document"`
		Index   int    `help:"Output HTML for specific embed index (0-based) to stdout" default:"-1"`
	} `cmd:"preview" help:"Preview the embeds of a post interactively."`

	Serve struct {
		Address string `help:"Listen address, overrides server.address"`
	} `cmd:"serve" help:"Serve the renderer over HTTP."`

	Init struct {
		Path string `help:"Where to write the configuration" default:"config.yaml"`
	} `cmd:"init" help:"Write the default configuration file."`

	CacheCmd struct {
		Stats   struct{} `cmd:"stats" help:"Show cache statistics."`
		Cleanup struct{} `cmd:"cleanup" help:"Remove expired entries."`
		Vacuum  struct{} `cmd:"vacuum" help:"Reclaim space in the sqlite cache."`
		Backup  struct{} `cmd:"backup" help:"Copy the sqlite cache database."`
		Delete  struct {
			Target string `arg:"" help:"Embed URL or cache key"`
			Lang   string `help:"Widget language the entry was cached for"`
		} `cmd:"delete" help:"Forget a cached embed."`
	} `cmd:"cache" name:"cache" help:"Inspect and maintain the embed cache."`
}

func main() {
	// Parse CLI with Kong YAML configuration file loading
	ctx := kong.Parse(&CLI,
		kong.Configuration(kongyaml.Loader, "config.yaml", "~/.embed-forge/config.yaml"),
	)

	// Configure logging level based on debug flag
	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	if ctx.Command() == "init" {
		if err := appconfig.SaveDefault(CLI.Init.Path); err != nil {
			fatal("Failed to write configuration", err)
		}
		fmt.Println("Wrote", CLI.Init.Path)
		return
	}

	cfg, err := appconfig.LoadConfig(CLI.Config)
	if err != nil {
		fatal("Failed to load configuration", err)
	}
	if CLI.Backend != "" {
		cfg.Cache.Backend = CLI.Backend
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := transient.New(runCtx, cfg.TransientConfig())
	if err != nil {
		fatal("Failed to open cache", err)
	}
	closeStore := func() {
		if err := transient.Close(store); err != nil {
			slog.Error("Failed to close cache", "error", err)
		}
	}
	atExit(closeStore)
	defer closeStore()

	fetcher := oembed.NewFetcher(
		oembed.NewHTTPClient(httputil.NewClient(cfg.HTTPConfig())),
		store,
		cfg.OEmbedConfig(),
	)
	renderer, err := render.New(fetcher, cfg.Site)
	if err != nil {
		fatal("Failed to load templates", err)
	}
	filter := shortcode.NewFilter(renderer)

	switch ctx.Command() {
	case "render <source>":
		renderPost(runCtx, filter, loadPost(runCtx, CLI.Render.Source, CLI.Render.Content))

	case "embed <url>":
		embedURL(runCtx, renderer, CLI.Embed.URL, CLI.Embed.Lang)

	case "params <url>":
		showParams(os.Stdout, renderer, CLI.Params.URL, "")

	case "cards <source>":
		printCards(loadPost(runCtx, CLI.Cards.Source, false), cfg.Site)

	case "preview <source>":
		post := loadPost(runCtx, CLI.Preview.Source, CLI.Preview.Content)
		previewPost(runCtx, renderer, post, CLI.Preview.Source, CLI.Preview.Index)

	case "serve":
		address := cfg.Server.Address
		if CLI.Serve.Address != "" {
			address = CLI.Serve.Address
		}
		serve(runCtx, server.New(filter, cfg.Server.AllowedOrigins), address)

	case "cache stats":
		cacheStats(runCtx, store)

	case "cache cleanup":
		cacheCleanup(runCtx, store)

	case "cache vacuum", "cache backup":
		sqliteMaintenance(runCtx, store, ctx.Command())

	case "cache delete <target>":
		fmt.Println("Deleted", cacheDelete(runCtx, store, renderer, CLI.CacheCmd.Delete.Target, CLI.CacheCmd.Delete.Lang))

	default:
		panic(ctx.Command())
	}
}

var exitHooks []func()

// atExit registers fn to run when the command fails. Hooks run in reverse order.
func atExit(fn func()) {
	exitHooks = append(exitHooks, fn)
}

func runExitHooks() {
	for i := len(exitHooks) - 1; i >= 0; i-- {
		exitHooks[i]()
	}
	exitHooks = nil
}

// fatal logs err and exits
func fatal(msg string, err error) {
	fail(msg, "error", err)
}

// fail logs msg, releases resources and exits with status 1
func fail(msg string, args ...any) {
	slog.Error(msg, args...)
	runExitHooks()
	os.Exit(1)
}

// loadPost reads a post document, or wraps raw content in a post
func loadPost(ctx context.Context, source string, rawContent bool) site.Post {
	var post site.Post

	if rawContent {
		var data []byte
		var err error
		if source == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(source)
		}
		if err != nil {
			fatal("Failed to read content", err)
		}
		post.Content = string(data)
		return post
	}

	var err error
	if source == "-" {
		err = config.LoadReader(os.Stdin, "", &post)
	} else {
		err = config.LoadOrFetch(ctx, source, &post)
	}
	if err != nil {
		fatal("Failed to load post", err)
	}
	return post
}

func renderPost(ctx context.Context, filter *shortcode.Filter, post site.Post) {
	page := render.NewPage()
	fmt.Println(filter.ApplyPost(ctx, page, post))
	if footer := filter.Renderer().Footer(page); footer != "" {
		fmt.Print(footer)
	}
}

func embedURL(ctx context.Context, renderer *render.Renderer, rawURL, lang string) {
	w, ok := widgets.Resolve(rawURL)
	if !ok {
		fail("Not an embeddable URL", "url", rawURL)
	}

	if lang != "" {
		options := renderer.Options()
		options.Lang = lang
		var err error
		renderer, err = render.New(renderer.Fetcher(), options)
		if err != nil {
			fatal("Failed to load templates", err)
		}
	}

	page := render.NewPage()
	html := renderer.Render(ctx, page, w)
	if html == "" {
		fail("Embed rendered nothing", "url", rawURL)
	}
	fmt.Println(html)
	fmt.Print(renderer.Footer(page))
}

func showParams(out io.Writer, renderer *render.Renderer, rawURL, lang string) {
	w, ok := widgets.Resolve(rawURL)
	if !ok {
		fail("Not an embeddable URL", "url", rawURL)
	}

	fmt.Fprintf(out, "kind: %s\n", w.Kind())
	if o, ok := w.(widgets.OEmbedder); ok {
		fmt.Fprintf(out, "oembed url: %s\n", o.OEmbedURL())
		if req, ok := renderer.RequestFor(o, lang); ok {
			fmt.Fprintf(out, "oembed query: %s\n", req.Params.Query())
			fmt.Fprintf(out, "cache key: %s\n", req.Key())
		}
	}
	fmt.Fprintln(out, "data attributes:")
	for _, attr := range w.AttributeMap().DataAttributes() {
		fmt.Fprintf(out, "  %s=%q\n", attr.Name, attr.Value)
	}
}

func printCards(post site.Post, options site.Options) {
	card, err := cards.ForPost(post, options)
	if err != nil {
		fatal("Failed to build card", err)
	}
	html, err := card.Render()
	if err != nil {
		fatal("Failed to render card", err)
	}
	fmt.Print(html)
}

func previewPost(ctx context.Context, renderer *render.Renderer, post site.Post, source string, index int) {
	items := preview.Collect(ctx, renderer, post.Content)

	// If index is specified, output HTML directly to stdout
	if index >= 0 {
		if index >= len(items) {
			fail("Index out of range", "index", index, "total", len(items))
		}
		fmt.Println(items[index].HTML)
		return
	}

	if err := preview.Run(items, source); err != nil {
		fatal("Preview failed", err)
	}
}

func serve(ctx context.Context, handler http.Handler, address string) {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}
}

func cacheStats(ctx context.Context, store transient.Store) {
	stats, ok := store.(transient.StatsProvider)
	if !ok {
		fmt.Println("The cache backend does not report statistics")
		return
	}
	values, err := stats.GetStats(ctx)
	if err != nil {
		fatal("Failed to read cache statistics", err)
	}
	for _, key := range slices.Sorted(maps.Keys(values)) {
		fmt.Printf("%s: %v\n", key, values[key])
	}
}

func cacheCleanup(ctx context.Context, store transient.Store) {
	cleaner, ok := store.(transient.CleanupProvider)
	if !ok {
		fmt.Println("The cache backend expires entries itself")
		return
	}
	removed, err := cleaner.CleanupExpired(ctx)
	if err != nil {
		fatal("Failed to clean up cache", err)
	}
	fmt.Printf("Removed %d expired entries\n", removed)
}

func sqliteMaintenance(ctx context.Context, store transient.Store, command string) {
	db, ok := store.(*transient.SQLite)
	if !ok {
		fail("Command requires the sqlite cache backend", "command", command)
	}

	if command == "cache vacuum" {
		if err := db.Vacuum(ctx); err != nil {
			fatal("Failed to vacuum cache", err)
		}
		fmt.Println("Vacuumed", db.Path())
		return
	}

	backupPath, err := db.Backup()
	if err != nil {
		fatal("Failed to back up cache", err)
	}
	fmt.Println("Backed up to", backupPath)
}

// cacheDelete accepts an embed URL, whose key is derived the way rendering derives it, or a raw key
func cacheDelete(ctx context.Context, store transient.Store, renderer *render.Renderer, target, lang string) string {
	key := target
	if w, ok := widgets.Resolve(target); ok {
		if o, ok := w.(widgets.OEmbedder); ok {
			if req, ok := renderer.RequestFor(o, lang); ok {
				key = req.Key()
			}
		}
	}
	if err := store.Delete(ctx, key); err != nil {
		fatal("Failed to delete cache entry", err)
	}
	return key
}
