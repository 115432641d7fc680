package patternscope

import "github.com/patternscope/patternscope/internal/errs"

// Error sentinels returned by NewProfile, DecodeValues and Validate. Re-exported at the
// package root so callers never need to import internal/errs directly.
var (
	ErrEmptyInput      = errs.ErrEmptyInput
	ErrNotAList        = errs.ErrNotAList
	ErrNonStringValues = errs.ErrNonStringValues
	ErrNoMatch         = errs.ErrNoMatch
)
