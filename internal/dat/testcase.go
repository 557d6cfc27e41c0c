package dat

// Section identifies one header of a test block.
type Section int

const (
	SectionData Section = iota
	SectionErrors
	SectionNewErrors
	SectionDocumentFragment
	SectionScriptOn
	SectionScriptOff
	SectionDocument

	sectionCount
)

var sectionHeaders = [sectionCount]string{
	SectionData:             "#data",
	SectionErrors:           "#errors",
	SectionNewErrors:        "#new-errors",
	SectionDocumentFragment: "#document-fragment",
	SectionScriptOn:         "#script-on",
	SectionScriptOff:        "#script-off",
	SectionDocument:         "#document",
}

// Header returns the literal header line for the section.
func (s Section) Header() string {
	if s < 0 || s >= sectionCount {
		return ""
	}
	return sectionHeaders[s]
}

func (s Section) String() string {
	return s.Header()
}

// completes reports whether seeing s makes the block under construction a
// complete test case: "#errors" and every header after it do.
func (s Section) completes() bool {
	return s >= SectionErrors && s < sectionCount
}

// ParseSection maps a line to its section. Only exact header lines match.
func ParseSection(line string) (Section, bool) {
	for s, h := range sectionHeaders {
		if line == h {
			return Section(s), true
		}
	}
	return 0, false
}

// Testcase is one conformance scenario read from a .dat file.
//
// Optional sections are nil when the block did not contain their header.
// A present section holds its lines, each terminated by "\n".
type Testcase struct {
	Data             string  `json:"data"`
	Errors           *string `json:"errors,omitempty"`
	NewErrors        *string `json:"new_errors,omitempty"`
	DocumentFragment *string `json:"document_fragment,omitempty"`
	ScriptOff        *string `json:"script_off,omitempty"`
	ScriptOn         *string `json:"script_on,omitempty"`
	Document         *string `json:"document,omitempty"`
}

// IsFragment reports whether the case parses its data under a context element.
func (tc *Testcase) IsFragment() bool {
	return tc.DocumentFragment != nil
}

// Clone returns a deep copy so a case can be executed more than once without
// sharing section buffers.
func (tc *Testcase) Clone() Testcase {
	dup := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := *s
		return &v
	}
	return Testcase{
		Data:             tc.Data,
		Errors:           dup(tc.Errors),
		NewErrors:        dup(tc.NewErrors),
		DocumentFragment: dup(tc.DocumentFragment),
		ScriptOff:        dup(tc.ScriptOff),
		ScriptOn:         dup(tc.ScriptOn),
		Document:         dup(tc.Document),
	}
}

// block accumulates one test case. The active section is an explicit tag
// selecting one of the owned buffers; data is always present.
type block struct {
	bufs     [sectionCount][]byte
	present  [sectionCount]bool
	active   Section
	complete bool
}

func newBlock() *block {
	b := &block{active: SectionData}
	b.present[SectionData] = true
	return b
}

func (b *block) activate(s Section) {
	b.active = s
	b.present[s] = true
	if s.completes() {
		b.complete = true
	}
}

func (b *block) appendLine(line string) {
	buf := append(b.bufs[b.active], line...)
	b.bufs[b.active] = append(buf, '\n')
}

// trimBlankLine drops the separator blank line that precedes the next
// "#data" header.
func (b *block) trimBlankLine() {
	buf := b.bufs[b.active]
	if n := len(buf); n >= 2 && buf[n-1] == '\n' && buf[n-2] == '\n' {
		b.bufs[b.active] = buf[:n-1]
	}
}

func (b *block) field(s Section) *string {
	if !b.present[s] {
		return nil
	}
	v := string(b.bufs[s])
	return &v
}

func (b *block) testcase() *Testcase {
	return &Testcase{
		Data:             string(b.bufs[SectionData]),
		Errors:           b.field(SectionErrors),
		NewErrors:        b.field(SectionNewErrors),
		DocumentFragment: b.field(SectionDocumentFragment),
		ScriptOff:        b.field(SectionScriptOff),
		ScriptOn:         b.field(SectionScriptOn),
		Document:         b.field(SectionDocument),
	}
}
