package activity

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Resolve matches a free-text name to a catalog activity, creating one when nothing matches.
	Resolve(ctx context.Context, input ResolveInput) (ResolveOutput, error)
	Search(ctx context.Context, input SearchInput) (SearchOutput, error)

	// Index maintenance
	SearchStatus(ctx context.Context) (SearchStatusOutput, error)
	SeedIndex(ctx context.Context) (SeedIndexOutput, error)
}
