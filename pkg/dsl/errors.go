/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"errors"
	"fmt"
)

func enrichError(err error, msg string, args ...any) error {
	s := msg
	if len(args) > 0 {
		s = fmt.Sprintf(msg, args...)
	}
	return fmt.Errorf("%w: %s", err, s)
}

var ErrInvalidRecursiveStateError = errors.New("invalid recursive state")

func ErrInvalidRecursiveState(msg string, args ...any) error {
	return enrichError(ErrInvalidRecursiveStateError, msg, args...)
}
