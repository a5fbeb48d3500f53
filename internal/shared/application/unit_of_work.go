package application

import "context"

// UnitOfWork scopes a group of repository calls to one transaction. Begin
// returns a derived context carrying the transaction; repositories pick it
// up from there.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFunc runs inside an open transaction.
type UnitOfWorkFunc func(ctx context.Context) error

// WithUnitOfWork runs fn transactionally, committing on success and rolling
// back on error. The fn error wins over any rollback error.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn UnitOfWorkFunc) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}

	return uow.Commit(txCtx)
}
