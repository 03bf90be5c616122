package solana

import (
	"fmt"
)

// CustomError is the numerical error returned by a program.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %x", int(c))
}
