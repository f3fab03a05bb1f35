// Package catalog holds the catalog use cases: reconciling fetched platform
// products into the store, running a full ingestion for one platform, and
// querying persisted rows.
package catalog
