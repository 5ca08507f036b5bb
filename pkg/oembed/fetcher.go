// Package oembed fetches embed markup from oEmbed providers through a TTL cache.
//
// Successful responses are cached for the provider's cache_age. Failed lookups are cached as an
// empty string for the default TTL so a broken embed does not trigger a provider call on every render.
package oembed

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/lepinkainen/embed-forge/pkg/params"
	"github.com/lepinkainen/embed-forge/pkg/transient"
	"github.com/lepinkainen/embed-forge/pkg/validate"
	"github.com/lepinkainen/embed-forge/pkg/widgets"
)

// Default provider endpoints
const (
	TwitterEndpoint = "https://publish.twitter.com/oembed"
	VineEndpoint    = "https://vine.co/oembed.json"
)

// DefaultTTL applies to failures and to responses without a cache_age
const DefaultTTL = 24 * time.Hour

const maxTTLSeconds = math.MaxInt64 / int64(time.Second)

// Config controls the fetcher
type Config struct {
	TwitterEndpoint string
	VineEndpoint    string
	DefaultTTL      time.Duration
	// DNT asks the provider not to use the embed for personalization
	DNT bool
	// AllowedTypes lists the oEmbed types accepted as success
	AllowedTypes []string
	// MaxConcurrent bounds simultaneous provider calls
	MaxConcurrent int
}

// DefaultConfig returns the production endpoints and policies
func DefaultConfig() Config {
	return Config{
		TwitterEndpoint: TwitterEndpoint,
		VineEndpoint:    VineEndpoint,
		DefaultTTL:      DefaultTTL,
		AllowedTypes:    []string{"rich", "video"},
		MaxConcurrent:   5,
	}
}

// Request describes one cacheable oEmbed lookup
type Request struct {
	Endpoint   string
	Tag        string
	Datasource string
	Lang       string
	Codes      string
	Params     *params.Params
}

// Key returns the cache key of the request
func (r Request) Key() string {
	return CacheKey(r.Tag, r.Datasource, r.Lang, r.Codes)
}

// Fetcher is a cache-aside oEmbed fetcher
type Fetcher struct {
	client    Client
	store     transient.Store
	config    Config
	allowed   map[string]bool
	semaphore chan struct{}

	inflightMu sync.Mutex
	inflight   map[string]*flight
}

// flight serializes misses for one key. The entry lives until its last holder releases it.
type flight struct {
	mu   sync.Mutex
	refs int
}

// NewFetcher creates a fetcher. Zero config fields take their DefaultConfig values.
func NewFetcher(client Client, store transient.Store, config Config) *Fetcher {
	defaults := DefaultConfig()
	if config.TwitterEndpoint == "" {
		config.TwitterEndpoint = defaults.TwitterEndpoint
	}
	if config.VineEndpoint == "" {
		config.VineEndpoint = defaults.VineEndpoint
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = defaults.DefaultTTL
	}
	if len(config.AllowedTypes) == 0 {
		config.AllowedTypes = defaults.AllowedTypes
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = defaults.MaxConcurrent
	}

	allowed := make(map[string]bool, len(config.AllowedTypes))
	for _, t := range config.AllowedTypes {
		allowed[t] = true
	}

	return &Fetcher{
		client:    client,
		store:     store,
		config:    config,
		allowed:   allowed,
		semaphore: make(chan struct{}, config.MaxConcurrent),
		inflight:  make(map[string]*flight),
	}
}

// Config returns the effective configuration
func (f *Fetcher) Config() Config {
	return f.config
}

// RequestFor builds the request for a widget. An invalid lang is dropped.
func (f *Fetcher) RequestFor(w widgets.OEmbedder, lang string) Request {
	endpoint := f.config.TwitterEndpoint
	if w.Endpoint() == widgets.EndpointVine {
		endpoint = f.config.VineEndpoint
	}
	return Request{
		Endpoint:   endpoint,
		Tag:        w.CacheTag(),
		Datasource: w.DatasourceID(),
		Lang:       validate.CleanLang(lang),
		Codes:      w.CacheCodes(),
		Params:     w.OEmbedParams(),
	}
}

// FetchWidget returns the oEmbed HTML for a widget, or "" when none is available
func (f *Fetcher) FetchWidget(ctx context.Context, w widgets.OEmbedder, lang string) string {
	return f.Fetch(ctx, f.RequestFor(w, lang))
}

// Fetch returns the cached HTML for req, requesting it from the provider on a miss.
// It never fails: any problem yields "" and is remembered for the default TTL.
func (f *Fetcher) Fetch(ctx context.Context, req Request) string {
	key := req.Key()

	if html, found := f.lookup(ctx, key); found {
		return html
	}

	// Concurrent misses for one key wait here; the re-check below serves them from the cache.
	entry := f.acquire(key)
	defer f.release(key, entry)

	if html, found := f.lookup(ctx, key); found {
		return html
	}

	html, ttl := f.request(ctx, req)
	if ctx.Err() != nil && html == "" {
		// The caller gave up; do not remember its cancellation as a provider failure.
		return ""
	}

	if err := f.store.Set(ctx, key, html, ttl); err != nil {
		slog.Warn("Failed to cache oEmbed response", "key", key, "error", err)
	} else {
		slog.Debug("Cached oEmbed response", "key", key, "ttl", ttl, "success", html != "")
	}
	return html
}

func (f *Fetcher) acquire(key string) *flight {
	f.inflightMu.Lock()
	entry, ok := f.inflight[key]
	if !ok {
		entry = &flight{}
		f.inflight[key] = entry
	}
	entry.refs++
	f.inflightMu.Unlock()

	entry.mu.Lock()
	return entry
}

func (f *Fetcher) release(key string, entry *flight) {
	entry.mu.Unlock()

	f.inflightMu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(f.inflight, key)
	}
	f.inflightMu.Unlock()
}

func (f *Fetcher) lookup(ctx context.Context, key string) (string, bool) {
	html, found, err := f.store.Get(ctx, key)
	if err != nil {
		slog.Warn("Error reading from cache", "key", key, "error", err)
		return "", false
	}
	if found {
		slog.Debug("Found cached oEmbed response", "key", key, "failure_marker", html == "")
	}
	return html, found
}

// request performs the provider call and returns the HTML to cache with its TTL
func (f *Fetcher) request(ctx context.Context, req Request) (string, time.Duration) {
	select {
	case f.semaphore <- struct{}{}:
		defer func() { <-f.semaphore }()
	case <-ctx.Done():
		return "", f.config.DefaultTTL
	}

	query := params.New().Set("omit_script", true)
	if req.Lang != "" {
		query.Set("lang", req.Lang)
	}
	if f.config.DNT {
		query.Set("dnt", true)
	}
	query.Merge(req.Params)

	slog.Debug("Requesting oEmbed", "endpoint", req.Endpoint, "url", query.String("url"))

	resp, err := f.client.Fetch(ctx, req.Endpoint, query)
	if err != nil {
		slog.Warn("oEmbed request failed", "endpoint", req.Endpoint, "url", query.String("url"), "error", err)
		return "", f.config.DefaultTTL
	}
	if resp == nil || !f.allowed[resp.Type] || resp.HTML == "" {
		slog.Warn("Unusable oEmbed response", "endpoint", req.Endpoint, "url", query.String("url"))
		return "", f.config.DefaultTTL
	}

	html := StripScripts(resp.HTML)
	if html == "" {
		return "", f.config.DefaultTTL
	}

	ttl := f.config.DefaultTTL
	if age := int64(resp.CacheAge); age > 0 {
		ttl = time.Duration(min(age, maxTTLSeconds)) * time.Second
	}
	return html, ttl
}
