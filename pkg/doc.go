// Package pkg provides the core libraries for framecast.
//
// # Overview
//
// Framecast turns the visual elements extracted from a rendered web page
// into a tree of design nodes: frames, groups, text and shapes, with their
// fills, strokes, effects, typography and stacking order carried over.
//
// # Architecture
//
// The typical data flow through framecast:
//
//	Extracted elements (JSON)
//	         ↓
//	    [io] ReadElements
//	         ↓
//	[classify] + [style] → [build] (one node per element)
//	         ↓                 ↑
//	    [asset] images, fetched with bounded concurrency
//	         ↓
//	[pipeline] batches, ordering, time limit, [perf] report
//	         ↓
//	  [host] Document → [io] ExportDocument / [render/treeviz]
//
// # Packages
//
//   - [element]: extracted element and page types
//   - [style]: CSS value parsing and translation into design styles
//   - [design]: the node tree and its ownership rules
//   - [classify]: element to node-kind decisions
//   - [asset]: image resolution, deduplication and caching
//   - [build]: per-element node construction
//   - [host]: the design document that receives a finished tree
//   - [pipeline]: batch scheduling and conversion orchestration
//   - [perf]: batch metrics and warnings
//   - [progress]: progress reporting
//   - [cache], [store]: persistence of assets, documents and conversions
//   - [observability]: logging hooks
//   - [errors]: coded errors and user-facing categories
package pkg
