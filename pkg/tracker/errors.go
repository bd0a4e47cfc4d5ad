package tracker

import "fmt"

type InvalidPNRError struct {
	PNR string
}

func (e *InvalidPNRError) Error() string {
	return fmt.Sprintf("cannot watch %q: PNR must be 10 digits", e.PNR)
}
