package source

import "fmt"

// Loc identifies a position in a source file.
type Loc struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
}

// String returns a human-readable representation of the location.
func (l Loc) String() string {
	if l.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsValid returns true if the location has line and column information.
func (l Loc) IsValid() bool {
	return l.Line > 0 && l.Column > 0
}
