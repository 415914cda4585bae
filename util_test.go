package cellsync

import "errors"

var (
	errReaderSawWriter  = errors.New("reader observed active writer")
	errInvalidReaders   = errors.New("invalid reader count")
	errMultipleWriters  = errors.New("multiple writers active")
	errWriterSawReaders = errors.New("writer observed active readers")
)
