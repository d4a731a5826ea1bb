package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ImportMode selects how imported data combines with existing state.
type ImportMode string

const (
	// ModeMerge keeps existing data and adds what is new.
	ModeMerge ImportMode = "merge"
	// ModeReplace discards existing data.
	ModeReplace ImportMode = "replace"
)

// ErrInvalidImportMode is returned for an unrecognized mode string.
var ErrInvalidImportMode = errors.New("import mode must be merge or replace")

// ParseImportMode converts user input into an ImportMode.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMerge:
		return ModeMerge, nil
	case ModeReplace:
		return ModeReplace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImportMode, s)
	}
}

func (m ImportMode) String() string {
	return string(m)
}
