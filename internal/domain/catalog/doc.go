// Package catalog contains the Catalog bounded context.
// It owns the canonical product shape returned to API callers and the
// persisted product row that the reconciliation pipeline writes.
//
// Key concepts:
//   - RawProduct: an untyped, platform-shaped payload as fetched from a store platform
//   - Product / Variant: the canonical API shape, built by ToCanonicalProduct
//   - ProductRecord: one persisted row, either a root (Init=true) or a child (Init=false)
//   - RowAdapter: per-platform mapping from a raw payload to a ProductRecord
//   - ProductStore: the persistence port used by reconciliation
//
// Every attribute with more than one possible source is resolved through an
// ordered extractor chain (see extractor.go).
package catalog
