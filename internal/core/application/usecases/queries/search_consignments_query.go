package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrSearchConsignmentsQueryIsNotConstructed = errors.New(
		"SearchConsignmentsQuery must be created via NewSearchConsignmentsQuery constructor",
	)
	ErrSearchTermIsRequired = errors.New("search term is required")
)

// SearchConsignmentsQuery finds consignments whose code, tracking ID or order
// code contains the search term.
type SearchConsignmentsQuery struct {
	term string

	guard guard.ConstructorGuard
}

// NewSearchConsignmentsQuery creates a consignment search query.
func NewSearchConsignmentsQuery(term string) (SearchConsignmentsQuery, error) {
	if term == "" {
		return SearchConsignmentsQuery{}, ErrSearchTermIsRequired
	}

	return SearchConsignmentsQuery{
		term:  term,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchConsignmentsQuery) Validate() error {
	return q.guard.Validate(ErrSearchConsignmentsQueryIsNotConstructed)
}

// Term returns the search term.
func (q SearchConsignmentsQuery) Term() string {
	return q.term
}
