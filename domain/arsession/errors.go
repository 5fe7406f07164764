package arsession

import "fmt"

// UnknownSizeError is returned by SelectSize for ids missing from the catalog.
type UnknownSizeError struct{ ID string }

func (e *UnknownSizeError) Error() string { return fmt.Sprintf("arsession: unknown size %q", e.ID) }
