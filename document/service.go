package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Operation names exposed by the core service.
const (
	OpGetLandingPage            = "getLandingPage"
	OpGetAPI                    = "getApi"
	OpGetConformanceDeclaration = "getConformanceDeclaration"
	OpGetCollections            = "getCollections"
	OpDescribeCollection        = "describeCollection"
)

// CoreOperations returns the operations every service exposes.
func CoreOperations() []string {
	return []string{
		OpGetLandingPage,
		OpGetAPI,
		OpGetConformanceDeclaration,
		OpGetCollections,
		OpDescribeCollection,
	}
}

// ServiceDescriptor identifies a service. It is constructed once at startup
// and never mutated afterwards.
type ServiceDescriptor struct {
	id         string
	version    *semver.Version
	operations map[string]struct{}
}

// NewServiceDescriptor parses version and returns the descriptor.
func NewServiceDescriptor(id, version string, operations ...string) (*ServiceDescriptor, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("service descriptor: id is required")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("service descriptor %s: invalid version %q: %w", id, version, err)
	}
	ops := make(map[string]struct{}, len(operations))
	for _, op := range operations {
		if op != "" {
			ops[op] = struct{}{}
		}
	}
	return &ServiceDescriptor{id: id, version: v, operations: ops}, nil
}

// ID returns the service identifier.
func (d *ServiceDescriptor) ID() string {
	return d.id
}

// Version returns the service version.
func (d *ServiceDescriptor) Version() *semver.Version {
	return d.version
}

// HasOperation reports whether the service exposes op.
func (d *ServiceDescriptor) HasOperation(op string) bool {
	_, ok := d.operations[op]
	return ok
}

// Operations returns the operation names sorted alphabetically.
func (d *ServiceDescriptor) Operations() []string {
	ops := make([]string, 0, len(d.operations))
	for op := range d.operations {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// String renders the descriptor fields by name.
func (d *ServiceDescriptor) String() string {
	return fmt.Sprintf("ServiceDescriptor[id=%s,version=%s,operations=%s]",
		d.id, d.version.Original(), strings.Join(d.Operations(), ","))
}
