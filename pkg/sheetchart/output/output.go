// Package output serializes datasets, selections and series.
package output

import (
	"encoding/json"

	"gopkg.in/yaml.v2"
)

// ToJSON serializes v to JSON, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToYAML serializes v to YAML.
func ToYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}
