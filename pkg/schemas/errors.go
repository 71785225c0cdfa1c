/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package schemas

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

var ErrUnknownTypeError = errors.New("unknown type")

func ErrUnknownType(msg string, args ...any) error {
	return enrichError(ErrUnknownTypeError, msg, args...)
}

var ErrUnknownChoiceError = errors.New("unknown choice")

func ErrUnknownChoice(msg string, args ...any) error {
	return enrichError(ErrUnknownChoiceError, msg, args...)
}

var ErrNotChoiceTypeError = errors.New("not a choice type")

func ErrNotChoiceType(msg string, args ...any) error {
	return enrichError(ErrNotChoiceTypeError, msg, args...)
}

var ErrNoParentError = errors.New("no parent schema")

func ErrNoParent(msg string, args ...any) error {
	return enrichError(ErrNoParentError, msg, args...)
}

var ErrOutOfBoundsError = errors.New("out of bounds")

func ErrOutOfBounds(msg string, args ...any) error {
	return enrichError(ErrOutOfBoundsError, msg, args...)
}
