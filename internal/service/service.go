package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/segyhp/loan-backoffice/internal/cache"
	customError "github.com/segyhp/loan-backoffice/pkg/errors"
)

// storeError maps a repository failure onto a business error. sql.ErrNoRows
// becomes the error built by notFound when one is given.
func storeError(err error, notFound func() *customError.BusinessError) error {
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound()
	}
	if _, ok := customError.AsBusiness(err); ok {
		return err
	}
	return customError.WrapDatabaseError(err)
}

// invalidateReports drops cached aggregates after a write. A cache failure
// never fails the write.
func invalidateReports(ctx context.Context, c cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "report cache invalidation failed", "error", customError.WrapCacheError(err))
	}
}
