package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Source store findings
	SrcFileNotLoaded  Code = 100
	SrcLineOutOfRange Code = 101
	SrcByteBeyondEOF  Code = 102

	// User-authored diagnostics (render command)
	UserDiagnostic Code = 200
)

// String returns the stable identifier used in all output formats.
func (c Code) String() string {
	return fmt.Sprintf("R%04d", uint16(c))
}
