package common

import "fmt"

var (
	ErrBadStatus                        = fmt.Errorf("unexpected response status")
	ErrPayloadTooSmall                  = fmt.Errorf("payload too small")
	ErrDecompress                       = fmt.Errorf("cannot decompress payload")
	ErrNoCountries                      = fmt.Errorf("no countries specified")
	ErrNoGuidesFoundError               = fmt.Errorf("no guide files found")
	ErrIndexingProcessHasAlreadyStarted = fmt.Errorf("indexing process has already started")
)
