// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/avre/translate"
)

var f = translate.From

var (
	// Peripheral errors
	ErrNotAttached = errors.New(f("peripheral not attached"))
	ErrAttached    = errors.New(f("peripheral already attached"))
)
