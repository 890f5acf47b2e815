package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/observability"
)

func recordOp(ctx context.Context, entity, op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			outcome = "not_found"
		}
	}
	observability.RecordRepositoryOperation(ctx, entity, op, outcome)
}

func recordNotFound(ctx context.Context, entity, op string) {
	observability.RecordRepositoryOperation(ctx, entity, op, "not_found")
}

// translateNotFound swaps gorm's sentinel for the repository's own.
func translateNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
