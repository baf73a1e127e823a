// Package manifest builds, caches and queries the documentation manifest:
// the insertion-ordered table from normalized URL to page or folder record
// covering every registered entity.
//
// # Building
//
// A Builder walks each entity root in registry order and emits one record
// per folder and document:
//
//	builder := manifest.NewBuilder(manifest.BuilderOptions{
//	    Registry:  registry,
//	    Walker:    walker.New(walker.Options{Extensions: cfg.Walker.Extensions}),
//	    Extractor: metadata.NewExtractor(),
//	})
//	m, stats, err := builder.Regenerate(ctx)
//
// # Lifecycle
//
// An Index owns the manifest of one process. It loads the cached manifest or
// builds it on first use, and rebuilds only when Refresh is called:
//
//	idx := manifest.NewIndex(manifest.IndexOptions{Builder: builder, Store: store})
//	page, err := idx.GetPage(ctx, "en/getting-started/")
//
// # Ordering
//
// Manifest order is walker pre-order within an entity and registry order
// across entities. Next/previous navigation and children listings follow it.
// A duplicate URL replaces the earlier record but keeps its position.
//
// # Error Handling
//
// Lookups that match nothing return nil, never an error. Cache failures are
// reported as misses. Walker failures abort the build.
package manifest
