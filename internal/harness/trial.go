package harness

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/roach88/treeconf/internal/dat"
)

// Mode is the scripting mode a trial runs under.
type Mode int

const (
	ScriptingDisabled Mode = iota
	ScriptingEnabled
)

// Label returns the mode's trial id suffix.
func (m Mode) Label() string {
	if m == ScriptingEnabled {
		return "yesscript"
	}
	return "noscript"
}

func (m Mode) String() string {
	return m.Label()
}

// Scripting returns the tree builder's scripting flag for the mode.
func (m Mode) Scripting() bool {
	return m == ScriptingEnabled
}

// ParseMode maps a trial id suffix back to its mode.
func ParseMode(label string) (Mode, error) {
	switch label {
	case "noscript":
		return ScriptingDisabled, nil
	case "yesscript":
		return ScriptingEnabled, nil
	default:
		return 0, fmt.Errorf("unknown scripting mode %q", label)
	}
}

// TrialID identifies a trial across runs.
type TrialID struct {
	File  string
	Index int
	Mode  Mode
}

func (id TrialID) String() string {
	return fmt.Sprintf("%s:%d:%s", id.File, id.Index, id.Mode.Label())
}

// ParseTrialID parses "file:index:mode".
func ParseTrialID(s string) (TrialID, error) {
	modeAt := strings.LastIndexByte(s, ':')
	if modeAt < 0 {
		return TrialID{}, fmt.Errorf("invalid trial id %q", s)
	}
	indexAt := strings.LastIndexByte(s[:modeAt], ':')
	if indexAt <= 0 {
		return TrialID{}, fmt.Errorf("invalid trial id %q", s)
	}

	index, err := strconv.Atoi(s[indexAt+1 : modeAt])
	if err != nil || index < 1 {
		return TrialID{}, fmt.Errorf("invalid trial id %q: index must be a positive integer", s)
	}
	mode, err := ParseMode(s[modeAt+1:])
	if err != nil {
		return TrialID{}, fmt.Errorf("invalid trial id %q: %w", s, err)
	}
	return TrialID{File: s[:indexAt], Index: index, Mode: mode}, nil
}

// Trial is one execution of a test case under one scripting mode.
type Trial struct {
	ID       TrialID
	Testcase dat.Testcase
}

// ExpandTrials turns the cases of one file into trials. A case with
// "#script-on" is not run with scripting disabled, one with "#script-off" is
// not run with scripting enabled; other cases yield a trial for each mode.
func ExpandTrials(file string, cases []dat.Testcase) []Trial {
	trials := make([]Trial, 0, 2*len(cases))
	for i := range cases {
		tc := &cases[i]
		index := i + 1

		if tc.ScriptOn == nil {
			trials = append(trials, Trial{
				ID:       TrialID{File: file, Index: index, Mode: ScriptingDisabled},
				Testcase: tc.Clone(),
			})
		}
		if tc.ScriptOff == nil {
			trials = append(trials, Trial{
				ID:       TrialID{File: file, Index: index, Mode: ScriptingEnabled},
				Testcase: tc.Clone(),
			})
		}
	}
	return trials
}

// FilterTrials keeps trials whose id matches the path.Match pattern. An
// empty pattern keeps everything.
func FilterTrials(trials []Trial, pattern string) ([]Trial, error) {
	if pattern == "" {
		return trials, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter pattern: %w", err)
	}

	var kept []Trial
	for _, t := range trials {
		if ok, _ := path.Match(pattern, t.ID.String()); ok {
			kept = append(kept, t)
		}
	}
	return kept, nil
}
