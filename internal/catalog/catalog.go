// Package catalog holds the compiled-in list of selectable roles
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Aggregate names a predefined bulk selection
type Aggregate string

const (
	Standard Aggregate = "standard" // every role except the opt-in ones
	Complete Aggregate = "complete" // every role
)

// Catalog is an ordered, immutable list of role names plus the two aggregates.
type Catalog struct {
	features []string
	index    map[string]int
	optIn    map[string]bool
}

// DefaultOptIn is the bootstrap role that only "complete" selects
const DefaultOptIn = "cloud-init"

var defaultFeatures = []string{
	"os-detection", "prerequisites", "base-installs", "docker-setup",
	"shell-customize", "nvim-setup", "dev-envs", "security-harden",
	"fonts", "terminals", "gui-installs", "nix-gui-installs", DefaultOptIn,
}

// Default returns the roles shipped with the playbook
func Default() *Catalog {
	return MustNew(defaultFeatures, DefaultOptIn)
}

// New validates and builds a catalog. optIn lists features that "standard" leaves out.
func New(features []string, optIn ...string) (*Catalog, error) {
	if len(features) == 0 {
		return nil, errors.New("catalog must contain at least one role")
	}
	c := &Catalog{
		features: make([]string, 0, len(features)),
		index:    make(map[string]int, len(features)),
		optIn:    make(map[string]bool, len(optIn)),
	}
	for _, f := range features {
		name := strings.TrimSpace(f)
		if name == "" {
			return nil, errors.New("role names cannot be empty")
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("duplicate role '%s'", name)
		}
		c.index[name] = len(c.features)
		c.features = append(c.features, name)
	}
	for _, o := range optIn {
		if _, ok := c.index[o]; !ok {
			return nil, fmt.Errorf("opt-in role '%s' is not in the catalog", o)
		}
		c.optIn[o] = true
	}
	return c, nil
}

// MustNew is New that panics on an invalid definition
func MustNew(features []string, optIn ...string) *Catalog {
	c, err := New(features, optIn...)
	if err != nil {
		panic(err)
	}
	return c
}

// Features returns the role names in catalog order
func (c *Catalog) Features() []string {
	return append([]string(nil), c.features...)
}

// Len returns the number of roles
func (c *Catalog) Len() int { return len(c.features) }

// At returns the role at a 0-based position
func (c *Catalog) At(i int) (string, bool) {
	if i < 0 || i >= len(c.features) {
		return "", false
	}
	return c.features[i], true
}

// Index returns the 0-based position of name, or -1
func (c *Catalog) Index(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Contains reports whether name is a known role
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// IsOptIn reports whether name is excluded from the standard aggregate
func (c *Catalog) IsOptIn(name string) bool {
	return c.optIn[name]
}

// OptIn returns the opt-in roles in catalog order
func (c *Catalog) OptIn() []string {
	var out []string
	for _, f := range c.features {
		if c.optIn[f] {
			out = append(out, f)
		}
	}
	return out
}

// Standard returns every role except the opt-in ones, in catalog order
func (c *Catalog) Standard() []string {
	out := make([]string, 0, len(c.features))
	for _, f := range c.features {
		if !c.optIn[f] {
			out = append(out, f)
		}
	}
	return out
}

// Complete returns every role, in catalog order
func (c *Catalog) Complete() []string {
	return c.Features()
}

// Set returns the members of an aggregate
func (c *Catalog) Set(kind Aggregate) ([]string, error) {
	switch kind {
	case Standard:
		return c.Standard(), nil
	case Complete:
		return c.Complete(), nil
	default:
		return nil, fmt.Errorf("unknown aggregate '%s'", kind)
	}
}

// Describe returns the short label shown next to an aggregate entry
func (c *Catalog) Describe(kind Aggregate) string {
	switch kind {
	case Standard:
		opt := c.OptIn()
		if len(opt) == 0 {
			return "all roles"
		}
		return "all except " + strings.Join(opt, ", ")
	case Complete:
		if len(c.optIn) == 0 {
			return "all roles"
		}
		return "all roles including " + strings.Join(c.OptIn(), ", ")
	}
	return ""
}
