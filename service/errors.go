// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import "errors"

var (
	ErrDuplicateItem = errors.New("item ranked more than once")
	ErrUnknownItem   = errors.New("unknown or retired item")
	ErrInvalidTitle  = errors.New("item title is required")
)
