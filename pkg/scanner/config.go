package scanner

import (
	"fmt"
	"reflect"
)

// TargetOptions carries the per-target values that flag configs can
// reference by field name.
type TargetOptions struct {
	Target     string
	OutputFile string
}

type FlagConfig struct {
	Flag         string `yaml:"flag" mapstructure:"flag"`
	Option       string `yaml:"option" mapstructure:"option"`
	Required     bool   `yaml:"required" mapstructure:"required"`
	Default      string `yaml:"default" mapstructure:"default"`
	IsBoolean    bool   `yaml:"is_boolean" mapstructure:"is_boolean"`
	IsPositional bool   `yaml:"is_positional" mapstructure:"is_positional"`
}

type ToolConfig struct {
	Name        string       `yaml:"name" mapstructure:"name"`
	Description string       `yaml:"description" mapstructure:"description"`
	Command     string       `yaml:"command" mapstructure:"command"`
	Flags       []FlagConfig `yaml:"flags" mapstructure:"flags"`
}

// DriverConfig is the full YAML shape of a scan tool configuration file
type DriverConfig struct {
	Description string     `yaml:"description" mapstructure:"description"`
	Tool        ToolConfig `yaml:"tool" mapstructure:"tool"`
}

// BuildArgs assembles the command line for one target from the flag
// configs, resolving option names against the fields of options.
func (tc *ToolConfig) BuildArgs(options interface{}) ([]string, error) {
	var args []string
	optionsValue := reflect.ValueOf(options)

	if optionsValue.Kind() == reflect.Ptr {
		optionsValue = optionsValue.Elem()
	}

	for _, flag := range tc.Flags {
		// Positional arguments: a literal flag value, or an option
		// resolved to its field value
		if flag.IsPositional {
			if flag.Option == "" {
				args = append(args, flag.Flag)
				continue
			}
			fieldValue := optionsValue.FieldByName(flag.Option)
			if !fieldValue.IsValid() {
				return nil, fmt.Errorf("field '%s' not found in options", flag.Option)
			}
			value := fmt.Sprintf("%v", fieldValue.Interface())
			if value == "" && flag.Required {
				return nil, fmt.Errorf("required option '%s' missing", flag.Option)
			}
			args = append(args, value)
			continue
		}

		// Flags without option names carry only their default value
		if flag.Option == "" {
			if flag.Flag != "" {
				if flag.Default != "" {
					args = append(args, flag.Flag, flag.Default)
				} else {
					args = append(args, flag.Flag)
				}
			}
			continue
		}

		fieldValue := optionsValue.FieldByName(flag.Option)
		if !fieldValue.IsValid() {
			if flag.Default != "" {
				args = append(args, flag.Flag, flag.Default)
				continue
			}
			return nil, fmt.Errorf("field '%s' not found in options", flag.Option)
		}
		value := fmt.Sprintf("%v", fieldValue.Interface())

		if flag.IsBoolean {
			if value == "true" {
				args = append(args, flag.Flag)
			}
			continue
		}

		if flag.Required && value == "" {
			return nil, fmt.Errorf("required option '%s' missing", flag.Option)
		}

		if value == "" && flag.Default != "" {
			value = flag.Default
		}

		if value != "" {
			args = append(args, flag.Flag, value)
		}
	}
	return args, nil
}
