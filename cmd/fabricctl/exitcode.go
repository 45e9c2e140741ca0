package main

import (
	"errors"

	"github.com/dnaas-fabric/reasoner/pkg/ferrors"
)

// exitCodeFor maps the error taxonomy to the exit codes fixed by §6.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case ferrorsIsAny(err, ferrors.ErrValidationFailed, ferrors.ErrTopologyInvalid, ferrors.ErrClassificationAmbiguous, ferrors.ErrConsolidationConflict):
		return exitValidation
	case ferrorsIsAny(err, ferrors.ErrIO, ferrors.ErrDataGap):
		return exitIO
	case ferrorsIsAny(err, ferrors.ErrCancelled):
		return exitCancelled
	default:
		return exitValidation
	}
}

func ferrorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
