// Package golistview provides paginated list presentation primitives:
// an incremental-fetch paging controller and a masonry column layout.
//
// Overview
//
// golistview splits the problem into two independent pieces:
//   - Controller: owns the PagingState of one list, drives page fetches
//     through an injected DataSource, serializes load-more attempts with a
//     one-slot gate and converts every fetch failure into the Error state.
//   - Masonry helpers: pure functions (Distribute, ColumnWidth and friends)
//     assigning items to columns round-robin and computing column geometry.
//
// Key concepts
//   - PagingState: a tagged union over Loading, Data and Error with an
//     exhaustive Match dispatch.
//   - DataSource: the paging contract; SliceSource, GORMSource, RedisSource
//     and FuncSource are the shipped implementations.
//   - ListView: the rendering boundary, translating the current state into
//     host renderables via a caller-supplied ItemRenderer and optional
//     Placeholders.
//   - Hook: the injected observability sink; NopHook, ZerologHook and
//     PromHook are provided.
//
// See README for examples and usage details.
package golistview
