// Package config loads the optional scheduler-selection file consumed by
// "schedule --config", the same decode-strict pattern the teacher uses for
// its workload specs.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the top-level scheduler configuration file. Loaded from YAML via
// Load(path); any field present in the file but not in this struct is a
// hard error rather than a silently ignored typo.
type Spec struct {
	Heuristic   string `yaml:"heuristic"`
	Flavor      string `yaml:"flavor"`
	TaskXML     string `yaml:"task_xml"`
	TopologyXML string `yaml:"topology_xml"`
	LogLevel    string `yaml:"log_level"`
}

// Load reads and parses a YAML scheduler config file. Uses strict parsing:
// unrecognized keys are rejected instead of silently dropped.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var s Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &s, nil
}

// ApplyDefaults fills any field config left blank with the given flag value,
// so a config file only needs to override what it cares about.
func (s *Spec) ApplyDefaults(heuristic, flavor, taskXML, topologyXML, logLevel string) {
	if s.Heuristic == "" {
		s.Heuristic = heuristic
	}
	if s.Flavor == "" {
		s.Flavor = flavor
	}
	if s.TaskXML == "" {
		s.TaskXML = taskXML
	}
	if s.TopologyXML == "" {
		s.TopologyXML = topologyXML
	}
	if s.LogLevel == "" {
		s.LogLevel = logLevel
	}
}
