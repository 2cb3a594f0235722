package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/symdiff"
)

// varValue is a variable value from a --vars file. It is written as a plain
// number, a mapping with re and im keys, or a two-element sequence.
type varValue struct {
	Re, Im float64
}

func (v *varValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.Im = 0
		return node.Decode(&v.Re)
	case yaml.MappingNode:
		var m struct {
			Re float64 `yaml:"re"`
			Im float64 `yaml:"im"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		v.Re, v.Im = m.Re, m.Im
		return nil
	case yaml.SequenceNode:
		var s []float64
		if err := node.Decode(&s); err != nil {
			return err
		}
		if len(s) != 2 {
			return fmt.Errorf("line %d: complex value needs 2 elements, not %d", node.Line, len(s))
		}
		v.Re, v.Im = s[0], s[1]
		return nil
	default:
		return fmt.Errorf("line %d: variable values must be numbers, {re, im} mappings, or [re, im] pairs", node.Line)
	}
}

// readVarsFile loads variable bindings from a YAML file.
func readVarsFile(path string) (map[string]varValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, exitError(exitFile, "file not found: %s", path)
		}
		return nil, exitError(exitFile, "reading %s: %v", path, err)
	}
	var vars map[string]varValue
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, exitError(exitFile, "parsing %s: %v", path, err)
	}
	return vars, nil
}

func addBindingFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("given", nil, "Variable definition name=value (repeatable; complex values as re,im)")
	cmd.Flags().String("vars", "", "YAML file of variable definitions")
}

// bindings collects variable values from --vars and then --given, so that
// --given overrides the file.
func bindings[T symdiff.Scalar[T]](cmd *cobra.Command, d domain[T], log *slog.Logger) (map[string]T, error) {
	vars := make(map[string]T)
	if path, _ := cmd.Flags().GetString("vars"); path != "" {
		file, err := readVarsFile(path)
		if err != nil {
			return nil, err
		}
		for name, v := range file {
			x, err := d.file(v)
			if err != nil {
				return nil, exitError(exitFlag, "%s: variable %s: %v", path, name, err)
			}
			log.Debug("bound variable", "name", name, "value", x.String(), "from", path)
			vars[name] = x
		}
	}
	given, _ := cmd.Flags().GetStringArray("given")
	for _, g := range given {
		name, val, ok := strings.Cut(g, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, exitError(exitFlag, `variable definitions must be "name=value", not %q`, g)
		}
		x, err := d.given(strings.TrimSpace(val))
		if err != nil {
			return nil, exitError(exitFlag, "setting %s: %v", name, err)
		}
		log.Debug("bound variable", "name", name, "value", x.String(), "domain", d.name)
		vars[name] = x
	}
	return vars, nil
}
