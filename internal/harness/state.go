package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/treeconf/internal/tokenizer"
	"github.com/roach88/treeconf/internal/treebuilder"
)

// ErrNotImplemented marks harness features that a tree builder asked for but
// the harness does not model yet.
var ErrNotImplemented = errors.New("not yet implemented")

// UnsupportedStateError is returned when a tree builder requests an initial
// tokenizer state with no tokenizer counterpart.
type UnsupportedStateError struct {
	State treebuilder.State
}

func (e *UnsupportedStateError) Error() string {
	return fmt.Sprintf("tokenizer state %s: %v", e.State, ErrNotImplemented)
}

// Is makes errors.Is(err, ErrNotImplemented) hold.
func (e *UnsupportedStateError) Is(target error) bool {
	return target == ErrNotImplemented
}

// MapTokenizerState translates the state a tree builder requests for its
// fragment context into the tokenizer's enumeration.
func MapTokenizerState(s treebuilder.State) (tokenizer.State, error) {
	switch s.Kind {
	case treebuilder.StateData:
		return tokenizer.StateData, nil
	case treebuilder.StatePlaintext:
		return tokenizer.StatePlainText, nil
	case treebuilder.StateRawData:
		switch s.Raw {
		case treebuilder.RawRCDATA:
			return tokenizer.StateRcData, nil
		case treebuilder.RawRAWTEXT:
			return tokenizer.StateRawText, nil
		case treebuilder.RawScriptData:
			return tokenizer.StateScriptData, nil
		}
	}
	return 0, &UnsupportedStateError{State: s}
}
