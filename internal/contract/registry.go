package contract

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Deployment is one deployed contract instance.
type Deployment struct {
	ContractID string `yaml:"contractId"`
	Network    string `yaml:"networkId"`
	Address    string `yaml:"address"`
}

// Registry resolves contract ids to deployed handles.
type Registry struct {
	deployments []Deployment
}

type registryFile struct {
	Deployments []Deployment `yaml:"deployments"`
}

// NewRegistry creates a registry from a list of deployments.
func NewRegistry(deployments ...Deployment) *Registry {
	return &Registry{deployments: deployments}
}

// LoadRegistry reads a deployments YAML file.
// A missing file yields an empty registry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read deployments: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry parses deployments YAML.
func ParseRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid deployments: %w", err)
	}
	for i, d := range f.Deployments {
		if d.ContractID == "" || d.Network == "" || strings.TrimSpace(d.Address) == "" {
			return nil, fmt.Errorf("invalid deployments: entry %d needs contractId, networkId and address", i+1)
		}
	}
	return NewRegistry(f.Deployments...), nil
}

// Resolve returns the handle for contractID on network, or nil when the
// contract is not deployed there.
func (r *Registry) Resolve(contractID, network string) *Handle {
	for _, d := range r.deployments {
		if d.ContractID == contractID && d.Network == network {
			return &Handle{ID: d.ContractID, Network: d.Network, Address: strings.TrimSpace(d.Address)}
		}
	}
	return nil
}

// Deployments returns all known deployments in file order.
func (r *Registry) Deployments() []Deployment {
	result := make([]Deployment, len(r.deployments))
	copy(result, r.deployments)
	return result
}
