package cmd

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fling-dev/fling/internal/cache"
	"github.com/fling-dev/fling/internal/config"
	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/log"
	"github.com/fling-dev/fling/internal/registry"
	"github.com/fling-dev/fling/internal/tracing"
)

func newTraceProvider() (*tracing.Provider, error) {
	tcfg := cfg.Tracing
	if tcfg.Enabled && tcfg.Exporter == "file" && tcfg.FilePath == "" {
		tcfg.FilePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tcfg)
}

func shutdownTraceProvider(provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = provider.Shutdown(ctx)
}

// loadRegistry is the scan-or-cache pipeline: resolve search dirs, load the
// cached snapshot when fresh, otherwise scan and parse everything, then
// build the registry and refresh the cache. store may be nil (caching off).
func loadRegistry(provider *tracing.Provider, store *cache.Store) ([]registry.Item, error) {
	tracer := provider.Tracer()
	ctx, span := tracer.Start(context.Background(), tracing.SpanStartup)
	defer span.End()

	dirs := desktop.DataDirs()
	states := desktop.DirStates(dirs)
	span.SetAttributes(attribute.Int(tracing.AttrDirCount, len(dirs)))

	var (
		entries []desktop.Entry
		counts  map[string]int
		hit     bool
	)

	if store != nil {
		_, loadSpan := tracer.Start(ctx, tracing.SpanCacheLoad)
		entries, counts, hit = store.Load(states)
		loadSpan.SetAttributes(attribute.Bool(tracing.AttrCacheHit, hit))
		loadSpan.End()
	}

	if !hit {
		_, scanSpan := tracer.Start(ctx, tracing.SpanScan)
		entries = desktop.LoadAll(dirs)
		scanSpan.SetAttributes(attribute.Int(tracing.AttrEntryCount, len(entries)))
		scanSpan.End()

		if store != nil {
			// Usage counts outlive the snapshot that recorded them.
			counts = store.LaunchCounts()
		}
	}

	_, buildSpan := tracer.Start(ctx, tracing.SpanRegistryBuild)
	reg := registry.Build(entries, registry.Options{
		CurrentDesktop: desktop.CurrentDesktop(),
		LaunchCounts:   counts,
		RankByUsage:    cfg.RankByUsage,
	})
	items := reg.VisibleEntries()
	buildSpan.SetAttributes(
		attribute.Int(tracing.AttrEntryCount, reg.Len()),
		attribute.Int(tracing.AttrVisibleCount, len(items)),
	)
	buildSpan.End()

	if store != nil && !hit {
		_, saveSpan := tracer.Start(ctx, tracing.SpanCacheSave)
		visible := make([]desktop.Entry, len(items))
		for i, item := range items {
			visible[i] = item.Entry
		}
		if err := store.Save(visible, counts, states); err != nil {
			saveSpan.RecordError(err)
			saveSpan.SetStatus(codes.Error, err.Error())
			log.ErrorErr(log.CatCache, "saving cache", err)
		}
		saveSpan.End()
	}

	log.Info(log.CatRegistry, "registry ready", "visible", len(items), "cache_hit", hit)
	return items, nil
}
