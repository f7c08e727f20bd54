package parser

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phillarmonic/psparam/internal/domain/parameter"
	perrors "github.com/phillarmonic/psparam/internal/errors"
	"github.com/phillarmonic/psparam/internal/types"
)

func TestParse_Declarations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected parameter.Parameter
	}{
		{
			name:     "untyped with default",
			input:    "$Name = true",
			expected: parameter.New("Name", types.None).WithDefault(true),
		},
		{
			name:     "name only",
			input:    "$Name",
			expected: parameter.New("Name", types.None),
		},
		{
			name:     "mandatory typed with default",
			input:    "[Parameter(Mandatory=$true)][string]$Name=$false",
			expected: parameter.New("Name", types.String).WithMandatory(true).WithDefault(false),
		},
		{
			name:     "parameter set name",
			input:    `[Parameter(ParameterSetName=$"Advanced")][int32]$Count`,
			expected: parameter.New("Count", types.I32).WithParameterSet("Advanced"),
		},
		{
			name: "multi line block",
			input: `[Parameter(
        Mandatory=$false
    )]
    [Boolean]
    $Boolean=$true`,
			expected: parameter.New("Boolean", types.None).WithDefault(true),
		},
		{
			name:     "bare mandatory",
			input:    "[Parameter(Mandatory)] [double] $Ratio",
			expected: parameter.New("Ratio", types.F64).WithMandatory(true),
		},
		{
			name:     "several attribute keys",
			input:    `[Parameter(Position=0, Mandatory=$true, ParameterSetName="Advanced Mode", ValueFromPipeline=$true)] [string] $Path`,
			expected: parameter.New("Path", types.String).WithMandatory(true).WithParameterSet("Advanced Mode"),
		},
		{
			name:     "later type overrides earlier",
			input:    "[string] [int64] $Id",
			expected: parameter.New("Id", types.I64),
		},
		{
			name:     "dotted type name",
			input:    "[System.Int32] $Count",
			expected: parameter.New("Count", types.I32),
		},
		{
			name:     "attribute sections are not types",
			input:    `[ValidateSet("a", "b")] [Alias('n')] [CmdletBinding()] [single] $Scale`,
			expected: parameter.New("Scale", types.F32),
		},
		{
			name:     "attribute after type keeps type",
			input:    `[pscredential] [ValidateNotNull()] $Credential`,
			expected: parameter.New("Credential", types.Credential),
		},
		{
			name:     "trailing comma after name",
			input:    "[string] $Name,",
			expected: parameter.New("Name", types.String),
		},
		{
			name:     "trailing comma after default",
			input:    "[switch] $Force = $false,",
			expected: parameter.New("Force", types.None).WithDefault(false),
		},
		{
			name:     "quoted default literal",
			input:    `$Enabled = "true"`,
			expected: parameter.New("Enabled", types.None).WithDefault(true),
		},
		{
			name:     "case insensitive keys and literals",
			input:    "[PARAMETER(mandatory=$TRUE)] [STRING] $name = $False",
			expected: parameter.New("name", types.String).WithMandatory(true).WithDefault(false),
		},
		{
			name:     "underscore in name",
			input:    "[int] $max_count",
			expected: parameter.New("max_count", types.I32),
		},
		{
			name:     "help message attribute",
			input:    `[Parameter(HelpMessage="Target host")] [string] $Host`,
			expected: parameter.New("Host", types.String).WithHelp("Target host"),
		},
		{
			name: "line comment help",
			input: `# The user name
# to greet

[Parameter(Mandatory=$true)]
[string] $Name`,
			expected: parameter.New("Name", types.String).WithMandatory(true).WithHelp("The user name\nto greet"),
		},
		{
			name: "block comment help",
			input: `<#
  .SYNOPSIS
  How many times
#>
[int64] $Times`,
			expected: parameter.New("Times", types.I64).WithHelp(".SYNOPSIS\nHow many times"),
		},
		{
			name:     "comment help wins over help message",
			input:    "<# From comment #>\n[Parameter(HelpMessage='from attribute')]$X",
			expected: parameter.New("X", types.None).WithHelp("From comment"),
		},
		{
			name:     "declaration after inline block comment",
			input:    "<# The name #> [string] $Name",
			expected: parameter.New("Name", types.String).WithHelp("The name"),
		},
		{
			name:     "declaration after closing block comment line",
			input:    "<#\n The name\n#> [string] $Name",
			expected: parameter.New("Name", types.String).WithHelp("The name"),
		},
		{
			name:     "trailing line comment",
			input:    "[string] $Name = $true # default on",
			expected: parameter.New("Name", types.String).WithDefault(true),
		},
		{
			name:     "trailing block comment",
			input:    "[string] $Name <# inline #>",
			expected: parameter.New("Name", types.String),
		},
		{
			name:     "comment between sections",
			input:    "[Parameter(Mandatory)] # required\n[int] <# count #> $Count",
			expected: parameter.New("Count", types.I32).WithMandatory(true),
		},
		{
			name:     "hash inside quoted value",
			input:    `[Parameter(ParameterSetName="A#B")] $X # set A#B`,
			expected: parameter.New("X", types.None).WithParameterSet("A#B"),
		},
		{
			name:     "inner comment lines are dropped",
			input:    "[string]\n# not help\n$Name",
			expected: parameter.New("Name", types.String),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_TypeTokens(t *testing.T) {
	for _, tt := range types.All() {
		input := fmt.Sprintf("[%s] $X", tt.Token)
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", input, err)
		}
		if got.DataType != types.Resolve(tt.Token) {
			t.Errorf("Parse(%q).DataType = %v, want %v", input, got.DataType, types.Resolve(tt.Token))
		}
	}

	for _, token := range []string{"hashtable", "bool", "switch", "uint32", "datetime"} {
		input := fmt.Sprintf("[%s] $X", token)
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", input, err)
		}
		if got.DataType != types.None {
			t.Errorf("Parse(%q).DataType = %v, want none", input, got.DataType)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  perrors.Kind
	}{
		// no name anywhere
		{"", perrors.NotFound},
		{"   \n\t", perrors.NotFound},
		{"hello world", perrors.NotFound},
		{"[string] Name", perrors.NotFound},
		{"[Parameter(Mandatory=$true", perrors.NotFound},
		{"[Parameter(Mandatory=$true)$Name", perrors.NotFound},
		{"# just a comment", perrors.NotFound},

		// name present but malformed
		{"$Name=$true[Parameter(Mandatory=$true", perrors.FailedToParse},
		{"[Parameter(Mandatory=$true)] $Name [string]", perrors.FailedToParse},
		{"[string] $Name =", perrors.FailedToParse},
		{"$Name = $maybe", perrors.FailedToParse},
		{"$Name = 1", perrors.FailedToParse},
		{`$Name = "true`, perrors.FailedToParse},
		{"$ = $true", perrors.FailedToParse},
		{"$", perrors.FailedToParse},
		{"$A, $B", perrors.FailedToParse},
		{"[string] $Name )", perrors.FailedToParse},
		{"[string] $Name = $true (", perrors.FailedToParse},

		// structural faults found before any name
		{"= $true", perrors.FailedToParse},
		{"[string] Name = $true", perrors.FailedToParse},
		{"] $Name", perrors.FailedToParse},
		{"[[string]] $Name", perrors.FailedToParse},
		{"[Parameter((Mandatory))] $Name", perrors.FailedToParse},
		{"[Parameter(Mandatory)] ) $Name", perrors.FailedToParse},
		{"(x) $Name", perrors.FailedToParse},
		{"[Parameter(Mandatory=$true] $Name", perrors.FailedToParse},
		{"[Parameter(Mandatory=maybe)] $Name", perrors.FailedToParse},
		{"[Parameter(Mandatory==$true)] $Name", perrors.FailedToParse},
		{"[Parameter(ParameterSetName=)] $Name", perrors.FailedToParse},
		{"[Parameter(=$true)] $Name", perrors.FailedToParse},
		{"[string=x] $Name", perrors.FailedToParse},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err == nil {
			t.Errorf("Parse(%q) expected %v, got nil error", tt.input, tt.kind)
			continue
		}
		if !stderrors.Is(err, tt.kind) {
			t.Errorf("Parse(%q) error = %v, want kind %v", tt.input, err, tt.kind)
		}
		var pe *perrors.ParseError
		if !stderrors.As(err, &pe) {
			t.Errorf("Parse(%q) error is %T, want *errors.ParseError", tt.input, err)
		}
		if diff := cmp.Diff(parameter.Parameter{}, got); diff != "" {
			t.Errorf("Parse(%q) returned a partial parameter:\n%s", tt.input, diff)
		}
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("[string] ] $Name")
	var pe *perrors.ParseError
	if !stderrors.As(err, &pe) {
		t.Fatalf("expected *errors.ParseError, got %T", err)
	}
	if pe.Source != "[string]]$Name" {
		t.Errorf("pe.Source = %q", pe.Source)
	}
	if pe.Offset != 8 {
		t.Errorf("pe.Offset = %d, want 8", pe.Offset)
	}
	if pe.Message != "unmatched ']'" {
		t.Errorf("pe.Message = %q", pe.Message)
	}

	_, err = Parse("$Name = $maybe")
	if !stderrors.As(err, &pe) {
		t.Fatalf("expected *errors.ParseError, got %T", err)
	}
	if pe.Offset != len("$Name=$maybe") {
		t.Errorf("end of input fault should point past the text. got=%d", pe.Offset)
	}
}

func TestParse_WhitespaceInsensitive(t *testing.T) {
	a, errA := Parse("$Name=$true")
	b, errB := Parse("$Name = \n $true")
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("whitespace changed the result (-compact +spaced):\n%s", diff)
	}
}

func TestParse_Idempotent(t *testing.T) {
	input := `[Parameter(Mandatory=$true, ParameterSetName="Advanced")] [int64] $Size = $false`
	first, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}
	if first.DefaultValue == second.DefaultValue {
		t.Errorf("results should not share default value storage")
	}
}

func TestParse_Concurrent(t *testing.T) {
	inputs := []string{
		"[Parameter(Mandatory=$true)][string]$Name=$false",
		"[double] $Ratio",
		"[Parameter(Mandatory=$true",
	}
	want := make([]parameter.Parameter, len(inputs))
	wantErr := make([]error, len(inputs))
	for i, in := range inputs {
		want[i], wantErr[i] = Parse(in)
	}

	p := NewParser()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				got, err := p.Parse(in)
				if (err == nil) != (wantErr[i] == nil) {
					t.Errorf("Parse(%q) error = %v, want %v", in, err, wantErr[i])
					continue
				}
				if diff := cmp.Diff(want[i], got); diff != "" {
					t.Errorf("Parse(%q) mismatch:\n%s", in, diff)
				}
			}
		}()
	}
	wg.Wait()
}

func TestParser_Tracer(t *testing.T) {
	var steps []Step
	p := NewParser(WithTracer(TracerFunc(func(step Step) {
		steps = append(steps, step)
	})))

	if _, err := p.Parse("[int] $N = $true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "[int]$N=$true"
	if len(steps) != len(text)+1 {
		t.Fatalf("expected %d steps, got=%d", len(text)+1, len(steps))
	}
	for i := 0; i < len(text); i++ {
		if steps[i].Char != text[i] || steps[i].Offset != i {
			t.Errorf("steps[%d] = %q@%d, want %q@%d", i, steps[i].Char, steps[i].Offset, text[i], i)
		}
	}
	last := steps[len(steps)-1]
	if last.Char != 0 || last.Err != nil || last.Offset != len(text) {
		t.Errorf("unexpected final step: %+v", last)
	}
	if !steps[6].State.InName || steps[6].State.Name != "N" {
		t.Errorf("steps[6] should be inside the name. got=%+v", steps[6].State)
	}

	steps = nil
	if _, err := p.Parse("]"); err == nil {
		t.Fatalf("expected error")
	}
	if len(steps) != 1 || steps[0].Err == nil {
		t.Errorf("expected a single failing step, got=%+v", steps)
	}
}

func TestParse_NoTracerSkipsSnapshots(t *testing.T) {
	input := "[string] $" + strings.Repeat("n", 300) + " = $true"

	allocs := testing.AllocsPerRun(20, func() {
		if _, err := Parse(input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	// one snapshot per character would cost hundreds of allocations
	if allocs > 60 {
		t.Errorf("Parse without a tracer made %.0f allocations, want <= 60", allocs)
	}
}
