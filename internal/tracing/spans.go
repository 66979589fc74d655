package tracing

// Span names for the startup pipeline.
const (
	SpanStartup       = "startup"
	SpanScan          = "scan"
	SpanParse         = "parse"
	SpanRegistryBuild = "registry.build"
	SpanCacheLoad     = "cache.load"
	SpanCacheSave     = "cache.save"
)

// Span attribute keys.
const (
	AttrDirCount      = "scan.dir_count"
	AttrFileCount     = "scan.file_count"
	AttrEntryCount    = "registry.entry_count"
	AttrVisibleCount  = "registry.visible_count"
	AttrRejectedCount = "parse.rejected_count"
	AttrCacheHit      = "cache.hit"
	AttrErrorMessage  = "error.message"
)
