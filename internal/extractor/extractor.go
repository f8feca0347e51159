package extractor

import "context"

// Extractor is the capability set every market-data source client implements.
// Implementations collapse all failures to an absent result; callers only see
// a nil *ExtractionResult when something went wrong.
type Extractor interface {
	// ValidateParameters reports whether the configuration supplied at
	// construction time is usable. It logs one error per failed check and
	// never panics.
	ValidateParameters() bool

	// ExtractDataFromSource resolves the requested coin and returns its
	// price series for the requested range, or nil on any failure.
	ExtractDataFromSource(ctx context.Context, req MarketRangeRequest) *ExtractionResult
}
