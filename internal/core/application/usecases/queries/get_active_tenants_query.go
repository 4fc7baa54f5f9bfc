package queries

import (
	"errors"

	"kitchen/internal/pkg/guard"
)

var ErrGetActiveTenantsQueryIsNotConstructed = errors.New(
	"GetActiveTenantsQuery must be created via NewGetActiveTenantsQuery constructor",
)

// GetActiveTenantsQuery lists the tenants that currently have production in
// flight. The background jobs use it to know which kitchens to sweep.
type GetActiveTenantsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveTenantsQuery creates the parameterless tenant listing query.
func NewGetActiveTenantsQuery() GetActiveTenantsQuery {
	return GetActiveTenantsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveTenantsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveTenantsQueryIsNotConstructed)
}
