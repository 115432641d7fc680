// Package errs holds the sentinel errors for Profile's input validation,
// wrapped with the usual errorutil conventions.
package errs

import errorutil "github.com/projectdiscovery/utils/errors"

// ErrEmptyInput is returned when NewProfile is called with a zero-length
// column.
var ErrEmptyInput = errorutil.New("patternscope: input column is empty")

// ErrNotAList is returned when the caller-supplied value is not a
// slice/list of values at all.
var ErrNotAList = errorutil.New("patternscope: input is not a list of values")

// ErrNonStringValues is returned when the input column contains a
// non-string element.
var ErrNonStringValues = errorutil.New("patternscope: input column contains non-string values")

// ErrNoMatch is returned by Validate when no pattern in the profile
// matches the given value.
var ErrNoMatch = errorutil.New("patternscope: value matches no pattern in profile")
