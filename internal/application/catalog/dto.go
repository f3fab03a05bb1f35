package catalog

import "github.com/catalogsync/backend/internal/domain/catalog"

// ResultMessage is the message of every successful ingest, search and list response
const ResultMessage = "OK"

// IngestResult is the response of one ingestion run.
// Items are built from the fetched payloads, not from what was stored.
// @name IngestResult
type IngestResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Result  IngestedItems `json:"result"`
}

// IngestedItems holds the canonical products of an ingestion run
// @name IngestedItems
type IngestedItems struct {
	Count int               `json:"count"`
	Items []catalog.Product `json:"items"`
}

// NewIngestResult builds a successful result from the fetched payloads
func NewIngestResult(raws []catalog.RawProduct) *IngestResult {
	items := catalog.ToCanonicalProducts(raws)
	return &IngestResult{
		Success: true,
		Message: ResultMessage,
		Result: IngestedItems{
			Count: len(items),
			Items: items,
		},
	}
}

// SearchRequest carries raw search query values
type SearchRequest struct {
	SearchText string `form:"searchText"`
	Price      string `form:"price"`
	Operator   string `form:"operator" binding:"omitempty,oneof=equal less more"`
}

// RecordsResult is the response of a search or list query
// @name RecordsResult
type RecordsResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Result  StoredRecords `json:"result"`
}

// StoredRecords holds persisted rows
// @name StoredRecords
type StoredRecords struct {
	Count int                     `json:"count"`
	Items []catalog.ProductRecord `json:"items"`
}

// NewRecordsResult wraps persisted rows in a query result
func NewRecordsResult(records []catalog.ProductRecord) *RecordsResult {
	if records == nil {
		records = []catalog.ProductRecord{}
	}
	return &RecordsResult{
		Success: true,
		Message: ResultMessage,
		Result: StoredRecords{
			Count: len(records),
			Items: records,
		},
	}
}
