package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/tablerepo/storagemodels"
)

// MatchResult is a sample record used by tests and examples. The partition
// key holds the event, the row key the match identifier.
type MatchResult struct {
	storagemodels.TableEntity

	// Winner of the match.
	Winner string `json:"Winner"`

	// Loser of the match.
	Loser string `json:"Loser"`

	// Score in set notation, e.g. "3-1".
	Score string `json:"Score"`

	// Timestamp when the match was played.
	// Format: date-time
	PlayedAt *strfmt.DateTime `json:"PlayedAt,omitempty"`
}
