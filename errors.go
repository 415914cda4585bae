package cellsync

import (
	"errors"
	"strings"
)

// ErrBorrowConflict matches every *BorrowConflictError under errors.Is.
var ErrBorrowConflict = errors.New("cellsync: borrow conflict")

// BorrowConflictError is the panic value of the aborting acquisitions
// (Lock, RLock, Read, Write) on a cell lock whose current borrows are
// incompatible with the request. It signals a reentrant or aliasing
// acquisition: there is no other holder that could ever release, so the
// caller must not recover and retry.
type BorrowConflictError struct {
	// Exclusive is true when the failed request was for exclusive access.
	Exclusive bool
	// Existing is the file:line of the earliest live borrow, if tracked.
	Existing string
}

func (e *BorrowConflictError) Error() string {
	var b strings.Builder
	b.WriteString("cellsync: unable to ")
	if e.Exclusive {
		b.WriteString("exclusively ")
	}
	b.WriteString("borrow")
	if e.Existing != "" {
		if e.Exclusive {
			b.WriteString(": already borrowed at ")
		} else {
			b.WriteString(": exclusively borrowed at ")
		}
		b.WriteString(e.Existing)
	}
	return b.String()
}

func (e *BorrowConflictError) Is(target error) bool {
	return target == ErrBorrowConflict
}
