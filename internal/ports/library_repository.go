package ports

import (
	"context"

	"github.com/bnema/audiolib/internal/domain"
)

type LibraryRepository interface {
	GetByID(ctx context.Context, id domain.LibraryID) (domain.LibraryConfig, error)
	List(ctx context.Context) ([]domain.LibraryConfig, error)
	Save(ctx context.Context, library domain.LibraryConfig) error
}
