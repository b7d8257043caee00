package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/internal/validation"
)

var validate = validation.New()

// validateRequest runs struct validation on a request message.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// storeError maps a storage error to a connect error and logs it.
func storeError(op string, err error, attrs ...any) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, storage.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, storage.ErrInvalid):
		code = connect.CodeInvalidArgument
	case errors.Is(err, storage.ErrConflict):
		code = connect.CodeFailedPrecondition
	}

	attrs = append(attrs, "error", err)
	if code == connect.CodeInternal {
		slog.Error(op+" failed", attrs...)
	} else {
		slog.Warn(op+" rejected", attrs...)
	}
	return connect.NewError(code, err)
}

func errUnknownFriend(id string) error {
	return fmt.Errorf("friend %q is not part of this trip", id)
}
