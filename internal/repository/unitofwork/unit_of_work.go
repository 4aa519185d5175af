package unitofwork

import (
	"context"

	"tajwid-pintar-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeRepository() contract.KnowledgeRepository
}
