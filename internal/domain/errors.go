package domain

import "errors"

var (
	ErrLibraryNotFound   = errors.New("library not found")
	ErrDuplicateLibrary  = errors.New("duplicate library id")
	ErrParentCycle       = errors.New("library parent cycle")
	ErrInvalidEntry      = errors.New("invalid library entry")
	ErrInvalidPoolConfig = errors.New("invalid pool config")
)
