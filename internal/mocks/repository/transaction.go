package repository

import (
	"context"

	domainrepo "storefront/internal/domain/repository"
)

// StubRepositoryFactory hands out the given mocks inside a transaction.
type StubRepositoryFactory struct {
	Users         domainrepo.UserRepository
	Games         domainrepo.GameRepository
	Orders        domainrepo.OrderRepository
	RefreshTokens domainrepo.RefreshTokenRepository
}

func (f *StubRepositoryFactory) UserRepo() domainrepo.UserRepository { return f.Users }

func (f *StubRepositoryFactory) GameRepo() domainrepo.GameRepository { return f.Games }

func (f *StubRepositoryFactory) OrderRepo() domainrepo.OrderRepository { return f.Orders }

func (f *StubRepositoryFactory) RefreshTokenRepo() domainrepo.RefreshTokenRepository {
	return f.RefreshTokens
}

// StubTransactionManager runs the transactional function directly against
// the factory, without any real transaction semantics.
type StubTransactionManager struct {
	Factory domainrepo.RepositoryFactory

	// Err short-circuits Execute when set.
	Err error
}

func (tm *StubTransactionManager) Execute(_ context.Context, fn func(domainrepo.RepositoryFactory) error) error {
	if tm.Err != nil {
		return tm.Err
	}

	return fn(tm.Factory)
}
