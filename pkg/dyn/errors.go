/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

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

var ErrUnexpectedKindError = errors.New("unexpected value kind")

func ErrUnexpectedKind(msg string, args ...any) error {
	return enrichError(ErrUnexpectedKindError, msg, args...)
}

var ErrUnsupportedNodeError = errors.New("unsupported node")

func ErrUnsupportedNode(msg string, args ...any) error {
	return enrichError(ErrUnsupportedNodeError, msg, args...)
}
