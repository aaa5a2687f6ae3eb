// Package config provides declarative pool configuration for repool.
// A configuration file declares zero or more named pools; the registry
// consumes validated files and builds one pool per record. Files are YAML
// by default, JSON when the path ends in .json, and support ${ENV_VAR}
// substitution before parsing.
//
// Example:
//
//	pools:
//	  - name: connections
//	    prototype: conn
//	    count: 8
//	    container: ${POOL_CONTAINER}
//	    eager: true
//	  - name: scratch-buffers
//	    prototype: buffer
//	    count: 0 # unbounded
package config

import (
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/repool/pkg/errors"
)

// PoolSpec declares a single named pool.
type PoolSpec struct {
	// Name identifies the pool; must be unique within a file
	Name string `yaml:"name" json:"name"`
	// Prototype names the blueprint the registry resolves to a typed
	// constructor at startup
	Prototype string `yaml:"prototype" json:"prototype"`
	// Count is the pool capacity; 0 means unbounded
	Count int `yaml:"count" json:"count"`
	// Container is an optional location hint passed to the factory
	Container string `yaml:"container,omitempty" json:"container,omitempty"`
	// Eager prewarms the pool to capacity at build time
	Eager bool `yaml:"eager" json:"eager"`
}

// File is a pool configuration document.
type File struct {
	Pools []PoolSpec `yaml:"pools" json:"pools"`
}

// Load reads a configuration file, substitutes ${ENV_VAR} references and
// parses it as JSON or YAML based on the file extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: file path is controlled by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file")
	}

	content := substituteEnvVars(string(data))

	var f File
	if strings.HasSuffix(path, ".json") {
		if err := gojson.Unmarshal([]byte(content), &f); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse JSON")
		}
	} else {
		if err := yaml.Unmarshal([]byte(content), &f); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML")
		}
	}

	return &f, nil
}

// Save writes a configuration file as JSON or YAML based on the file
// extension.
func Save(path string, f *File) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".json") {
		data, err = gojson.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to write config file")
	}
	return nil
}

// Validate checks every pool record and the uniqueness of names. It runs
// before any pool is constructed; a failure here is fatal to registry
// setup. The returned error names the offending record.
func (f *File) Validate() error {
	seen := make(map[string]int, len(f.Pools))
	for i, spec := range f.Pools {
		if spec.Name == "" {
			return errors.Newf(errors.ErrorTypeValidation, "pool at index %d has no name", i)
		}
		if spec.Prototype == "" {
			return errors.Newf(errors.ErrorTypeValidation, "pool %q has no prototype", spec.Name).
				WithDetail("name", spec.Name)
		}
		if spec.Count < 0 {
			return errors.Newf(errors.ErrorTypeValidation, "pool %q has negative count %d", spec.Name, spec.Count).
				WithDetail("name", spec.Name).
				WithDetail("count", spec.Count)
		}
		if first, dup := seen[spec.Name]; dup {
			return errors.Newf(errors.ErrorTypeConflict, "duplicate pool name %q (records %d and %d)", spec.Name, first, i).
				WithDetail("name", spec.Name)
		}
		seen[spec.Name] = i
	}
	return nil
}

// Lookup returns the spec with the given name.
func (f *File) Lookup(name string) (PoolSpec, bool) {
	for _, spec := range f.Pools {
		if spec.Name == name {
			return spec, true
		}
	}
	return PoolSpec{}, false
}

// String returns a short human-readable summary of a spec.
func (s PoolSpec) String() string {
	bound := fmt.Sprintf("count=%d", s.Count)
	if s.Count == 0 {
		bound = "unbounded"
	}
	return fmt.Sprintf("%s (prototype=%s, %s, eager=%t)", s.Name, s.Prototype, bound, s.Eager)
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
