package parameter

import "github.com/phillarmonic/psparam/internal/types"

// Parameter is one parsed parameter declaration.
// It is a value: the With* methods return modified copies and never touch the receiver.
type Parameter struct {
	Name             string         `json:"name" yaml:"name"`
	DataType         types.DataType `json:"data_type" yaml:"data_type"`
	DefaultValue     *bool          `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Mandatory        bool           `json:"mandatory" yaml:"mandatory"`
	ParameterSetName *string        `json:"parameter_set_name,omitempty" yaml:"parameter_set_name,omitempty"`
	Help             *string        `json:"help,omitempty" yaml:"help,omitempty"`
}

// New creates a parameter with no default, no parameter set and no help
func New(name string, dataType types.DataType) Parameter {
	return Parameter{
		Name:     name,
		DataType: dataType,
	}
}

// WithDefault returns a copy with the default value set
func (p Parameter) WithDefault(v bool) Parameter {
	p.DefaultValue = &v
	return p
}

// WithMandatory returns a copy with the mandatory flag set
func (p Parameter) WithMandatory(mandatory bool) Parameter {
	p.Mandatory = mandatory
	return p
}

// WithParameterSet returns a copy belonging to the named parameter set
func (p Parameter) WithParameterSet(name string) Parameter {
	p.ParameterSetName = &name
	return p
}

// WithHelp returns a copy carrying help text
func (p Parameter) WithHelp(help string) Parameter {
	p.Help = &help
	return p
}

// Default returns the default value and whether one was declared
func (p Parameter) Default() (bool, bool) {
	if p.DefaultValue == nil {
		return false, false
	}
	return *p.DefaultValue, true
}

// HasDefault checks if the declaration assigns a default value
func (p Parameter) HasDefault() bool {
	return p.DefaultValue != nil
}

// SetName returns the parameter set name, or "" when none was declared
func (p Parameter) SetName() string {
	if p.ParameterSetName == nil {
		return ""
	}
	return *p.ParameterSetName
}

// HelpText returns the help text, or "" when none was declared
func (p Parameter) HelpText() string {
	if p.Help == nil {
		return ""
	}
	return *p.Help
}
