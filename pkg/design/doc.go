// Package design defines the output tree of a conversion: typed, styled
// design nodes ready to be materialized in a design tool.
//
// # Overview
//
// A [Node] is one of four variants, matched with a type switch:
//
//   - [*Text]: a run of characters with typography
//   - [*Frame]: a container with paint and optional auto layout
//   - [*Shape]: a leaf rectangle, possibly with an image fill
//   - [*Group]: a paint-less container whose bounds follow its children
//
// Node is sealed: only this package can add variants, so switches over the
// four types above are exhaustive.
//
// # Ownership
//
// Only containers ([*Frame] and [*Group]) hold children. A node belongs to
// at most one container; [Attach] refuses to re-parent. The parent link
// returned by [Parent] is a non-owning back-reference used for the z-order
// pass; it is never serialized.
//
// # Ordering
//
// Every node carries a stacking index (Z) and a document index (Order).
// Both exist only for the builder: [SortChildren] orders a container's
// children by ascending (Z, Order), which is the paint order, and
// [Validate] checks that every container in a tree satisfies it.
//
// # Concurrency
//
// Trees are not safe for concurrent modification. Separate trees may be
// built in parallel.
package design
