package driven

import (
	"time"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// SearchRecorder receives operational measurements. Optional; services
// accept nil.
type SearchRecorder interface {
	// RecordSearch records a finished search.
	RecordSearch(status domain.OutcomeStatus, candidates, results int, elapsed time.Duration)

	// RecordKeywordChange records a persisted taxonomy mutation.
	RecordKeywordChange(op string)
}
