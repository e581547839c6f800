package edit

import (
	"io"

	"gopkg.in/yaml.v3"
)

// bindingDoc is the YAML shape of one binding in the dump.
type bindingDoc struct {
	Key     string `yaml:"key"`
	Command string `yaml:"command"`
	Mode    string `yaml:"mode"`
}

// DumpBindings writes the effective binding table as YAML, for docs tooling.
// The mode field is "any" for unscoped bindings.
func (ed *Editor) DumpBindings(w io.Writer) error {
	bindings := ed.Bindings()
	docs := make([]bindingDoc, len(bindings))
	for i, b := range bindings {
		mode := "any"
		if !b.Any {
			mode = b.Mode.String()
		}
		docs[i] = bindingDoc{Key: b.Key, Command: b.Command, Mode: mode}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(docs)
}
