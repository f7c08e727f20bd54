package parser

import (
	"fmt"
	"strings"

	"github.com/phillarmonic/psparam/internal/domain/parameter"
	perrors "github.com/phillarmonic/psparam/internal/errors"
	"github.com/phillarmonic/psparam/internal/lexer"
	"github.com/phillarmonic/psparam/internal/types"
)

// SectionKind classifies the bracket section being scanned
type SectionKind int

const (
	SectionNone      SectionKind = iota // not yet classified
	SectionParameter                    // [Parameter(...)]
	SectionAttribute                    // any other [Attribute(...)]
)

// String returns the section kind name
func (k SectionKind) String() string {
	switch k {
	case SectionParameter:
		return "parameter"
	case SectionAttribute:
		return "attribute"
	default:
		return "none"
	}
}

// MarshalText renders the section kind by name
func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// State is the scanner state for one declaration. Feed it the normalized text one
// character at a time with Step, then call Finish.
//
// Scope flags may be set together: a subsection implies a section, and the default
// literal is only read once the name has closed. Name and section are never both open.
type State struct {
	inSection    bool
	inSubsection bool
	inName       bool
	inDefault    bool

	quote   byte        // open quote character, 0 outside literals
	section SectionKind // kind of the current or last section
	secName []byte      // word characters of the current section
	key     []byte      // attribute key inside a subsection
	value   []byte      // attribute value or default literal
	inValue bool        // '=' seen for the current attribute pair

	sawName bool // a '$' opened the parameter name
	pos     int  // offset of the next character

	name         []byte
	dataType     types.DataType
	defaultValue *bool
	mandatory    bool
	setName      *string
	helpMessage  *string
}

// NewState returns the state at the start of a declaration
func NewState() *State {
	return &State{}
}

// Offset returns the offset of the next character to be scanned
func (s *State) Offset() int {
	return s.pos
}

// Step scans one character. A non-nil error is always a *errors.ParseError of kind
// FailedToParse and leaves the state unusable.
func (s *State) Step(ch byte) error {
	err := s.step(ch)
	s.pos++
	return err
}

func (s *State) step(ch byte) error {
	if s.quote != 0 {
		if ch == s.quote {
			s.quote = 0
		} else {
			s.capture(ch)
		}
		return nil
	}

	switch ch {
	case '"', '\'':
		if s.inName {
			return s.fail("unexpected quote in parameter name")
		}
		s.quote = ch
	case '[':
		return s.openSection()
	case ']':
		return s.closeSection()
	case '(':
		return s.openSubsection()
	case ')':
		return s.closeSubsection()
	case '$':
		return s.dollar()
	case '=':
		return s.assign()
	case ',':
		return s.comma()
	case '.':
		// dotted type names such as [System.Int32]
		if s.inSection && !s.inSubsection {
			s.secName = append(s.secName, ch)
			return nil
		}
		s.capture(ch)
	default:
		if lexer.IsWordChar(ch) {
			s.word(ch)
			return nil
		}
		s.capture(ch)
	}
	return nil
}

// capture appends ch to the literal being read, if any
func (s *State) capture(ch byte) {
	if s.inDefault || (s.inSubsection && s.inValue) {
		s.value = append(s.value, ch)
	}
}

func (s *State) word(ch byte) {
	switch {
	case s.inName:
		s.name = append(s.name, ch)
	case s.inDefault:
		s.value = append(s.value, ch)
	case s.inSubsection && s.inValue:
		s.value = append(s.value, ch)
	case s.inSubsection:
		s.key = append(s.key, ch)
	case s.inSection:
		s.secName = append(s.secName, ch)
	}
	// words outside any scope are insignificant
}

func (s *State) openSection() error {
	if s.inSection {
		return s.fail("nested '['")
	}
	if s.sawName {
		return s.fail("section after parameter name")
	}
	s.inSection = true
	s.section = SectionNone
	s.secName = s.secName[:0]
	return nil
}

func (s *State) closeSection() error {
	if !s.inSection {
		return s.fail("unmatched ']'")
	}
	if s.inSubsection {
		return s.fail("unclosed '(' before ']'")
	}
	if s.section == SectionNone && !s.isParameterSection() {
		// a bare type section; later ones override earlier ones
		s.dataType = types.Resolve(typeToken(string(s.secName)))
	}
	s.inSection = false
	s.secName = s.secName[:0]
	return nil
}

func (s *State) openSubsection() error {
	if !s.inSection {
		return s.fail("'(' outside a section")
	}
	if s.inSubsection {
		return s.fail("nested '('")
	}
	if s.isParameterSection() {
		s.section = SectionParameter
	} else {
		s.section = SectionAttribute
	}
	s.inSubsection = true
	s.resetPair()
	return nil
}

func (s *State) closeSubsection() error {
	if !s.inSubsection {
		return s.fail("unmatched ')'")
	}
	if err := s.commitAttribute(); err != nil {
		return err
	}
	s.inSubsection = false
	return nil
}

func (s *State) dollar() error {
	switch {
	case s.inDefault, s.inSubsection:
		// value sigil, as in $true
		s.capture('$')
	case s.inSection:
		// insignificant inside a bare section
	case s.sawName:
		return s.fail("more than one parameter name")
	default:
		s.sawName = true
		s.inName = true
	}
	return nil
}

func (s *State) assign() error {
	switch {
	case s.inSubsection:
		if s.inValue {
			return s.fail("unexpected '=' in attribute value")
		}
		if len(s.key) == 0 {
			return s.fail("'=' without attribute key")
		}
		s.inValue = true
	case s.inSection:
		return s.fail("unexpected '=' in section")
	case s.inName:
		if err := s.endName(); err != nil {
			return err
		}
		s.inDefault = true
		s.value = s.value[:0]
	default:
		return s.fail("'=' without preceding parameter name")
	}
	return nil
}

func (s *State) comma() error {
	switch {
	case s.inSubsection:
		if err := s.commitAttribute(); err != nil {
			return err
		}
		s.resetPair()
	case s.inName:
		return s.endName()
	case s.inDefault:
		return s.endDefault()
	}
	return nil
}

func (s *State) endName() error {
	s.inName = false
	if len(s.name) == 0 {
		return s.fail("empty parameter name")
	}
	return nil
}

func (s *State) endDefault() error {
	s.inDefault = false
	if len(s.value) == 0 {
		return s.fail("missing default value")
	}
	v, err := types.ParseBool(string(s.value))
	if err != nil {
		return s.fail(fmt.Sprintf("unresolvable default value %q", s.value))
	}
	s.defaultValue = &v
	return nil
}

// commitAttribute applies the current key/value pair of a Parameter(...) subsection
func (s *State) commitAttribute() error {
	if s.section != SectionParameter || len(s.key) == 0 {
		return nil
	}

	raw := strings.TrimPrefix(string(s.value), "$")
	switch strings.ToLower(string(s.key)) {
	case "mandatory":
		if !s.inValue {
			s.mandatory = true // bare [Parameter(Mandatory)]
			return nil
		}
		v, err := types.ParseBool(raw)
		if err != nil {
			return s.fail(fmt.Sprintf("invalid Mandatory value %q", s.value))
		}
		s.mandatory = v
	case "parametersetname":
		if raw == "" {
			return s.fail("ParameterSetName needs a value")
		}
		s.setName = &raw
	case "helpmessage":
		if raw != "" {
			s.helpMessage = &raw
		}
	}
	return nil
}

func (s *State) resetPair() {
	s.key = s.key[:0]
	s.value = s.value[:0]
	s.inValue = false
}

func (s *State) isParameterSection() bool {
	return strings.EqualFold(string(s.secName), "parameter")
}

// Finish closes the scan at end of input and returns the declaration.
// It returns a NotFound error when no parameter name was seen, which takes precedence
// over scopes left open.
func (s *State) Finish() (parameter.Parameter, error) {
	if !s.sawName {
		return parameter.Parameter{}, s.errorf(perrors.NotFound, "no '$' parameter name in declaration")
	}

	switch {
	case s.quote != 0:
		return parameter.Parameter{}, s.errorf(perrors.FailedToParse, "unterminated string literal at end of input")
	case s.inSubsection:
		return parameter.Parameter{}, s.errorf(perrors.FailedToParse, "unclosed '(' at end of input")
	case s.inSection:
		return parameter.Parameter{}, s.errorf(perrors.FailedToParse, "unclosed '[' at end of input")
	}

	if s.inName {
		if err := s.endName(); err != nil {
			return parameter.Parameter{}, err
		}
	}
	if s.inDefault {
		if err := s.endDefault(); err != nil {
			return parameter.Parameter{}, err
		}
	}

	p := parameter.New(string(s.name), s.dataType).WithMandatory(s.mandatory)
	if s.defaultValue != nil {
		p = p.WithDefault(*s.defaultValue)
	}
	if s.setName != nil {
		p = p.WithParameterSet(*s.setName)
	}
	if s.helpMessage != nil {
		p = p.WithHelp(*s.helpMessage)
	}
	return p, nil
}

// fail reports a structural fault at the current character
func (s *State) fail(message string) error {
	return perrors.New(perrors.FailedToParse, message, s.pos, "")
}

// errorf reports a fault detected at end of input
func (s *State) errorf(kind perrors.Kind, message string) error {
	return perrors.New(kind, message, -1, "")
}

// Snapshot is a copy of the scanner flags for tracing and tests
type Snapshot struct {
	InSection    bool           `json:"in_section"`
	InSubsection bool           `json:"in_subsection"`
	InName       bool           `json:"in_name"`
	InDefault    bool           `json:"in_default"`
	InQuote      bool           `json:"in_quote"`
	Section      SectionKind    `json:"section"`
	SectionName  string         `json:"section_name"`
	Name         string         `json:"name"`
	DataType     types.DataType `json:"data_type"`
}

// Snapshot returns the current flags and buffers
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		InSection:    s.inSection,
		InSubsection: s.inSubsection,
		InName:       s.inName,
		InDefault:    s.inDefault,
		InQuote:      s.quote != 0,
		Section:      s.section,
		SectionName:  string(s.secName),
		Name:         string(s.name),
		DataType:     s.dataType,
	}
}

// typeToken returns the last segment of a dotted type name
func typeToken(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
