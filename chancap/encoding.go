package chancap

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ReadModel loads a model definition from a YAML file of the form:
//
//	alpha: [2.0, 2.2, 2.4, 2.6, 2.8]
//	beta: [2.0, 2.2, 2.4, 2.6, 2.8]
//	power_total: 0.5
//	bandwidth_total: 1.0
//
// Omitted totals take the 1.0 defaults at solve time.
func ReadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newErrorMsg("ReadModel", err.Error())
	}
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, newErrorMsg("ReadModel", err.Error())
	}
	return &m, nil
}
