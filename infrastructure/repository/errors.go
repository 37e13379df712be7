package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// storageError classifica a falha como ErrStorage, preservando o erro original e o código do Postgres
func storageError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w: %s (pq %s): %w", domain.ErrStorage, op, pqErr.Code, err)
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
