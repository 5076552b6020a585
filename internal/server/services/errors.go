package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/logging"
)

var taxonomy = []error{
	common.ErrValidation,
	common.ErrNotFoundOrUnauthorized,
	common.ErrAlreadyExists,
	common.ErrorUnauthorized,
	common.ErrInvalidToken,
	common.ErrTokenExpired,
	common.ErrRefreshTokenExpired,
	common.ErrConflict,
	common.ErrorInternal,
}

// hide passes errors of the service taxonomy through unchanged. Anything
// else (driver errors, wrapped repository errors) is logged and replaced by
// common.ErrorInternal so storage detail never reaches a caller.
func hide(ctx context.Context, log logging.Logger, op string, err error) error {
	for _, known := range taxonomy {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// hideTask is hide for task-addressed operations: a missing row becomes
// common.ErrNotFoundOrUnauthorized.
func hideTask(ctx context.Context, log logging.Logger, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrNotFoundOrUnauthorized
	}
	return hide(ctx, log, op, err)
}
