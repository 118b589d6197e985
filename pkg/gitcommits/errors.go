package gitcommits

import "errors"

var (
	ErrRevisionNotFound = errors.New("revision not found")
	ErrEmptyHistory     = errors.New("revision has no commit history")
)
