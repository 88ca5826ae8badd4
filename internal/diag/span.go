package diag

import (
	"fmt"

	"ripple/internal/sourcedb"
)

// Span is a half-open byte interval in one source file.
type Span struct {
	File  sourcedb.FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
