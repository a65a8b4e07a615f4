package lexer

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/errors"
)

// Family identifies a registered tokenizer: a language name plus a semantic
// version of its producer set.
type Family struct {
	Name    string
	Version string
}

func (f Family) String() string {
	if f.Version == "" {
		return f.Name
	}
	return f.Name + "@" + f.Version
}

type registration struct {
	family    Family
	version   *semver.Version
	producers []Producer
}

// Registry maps tokenizer families to their ordered producers. Registration
// happens at startup; the first Lookup seals the registry and from then on it
// is read-only and safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	families map[string][]registration
	sealed   bool
}

// DefaultRegistry is where language packages register themselves from init.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[string][]registration)}
}

// Register adds a family. It panics when the family is already registered,
// when its version is not a semantic version, or after the registry has been
// sealed.
func (r *Registry) Register(f Family, producers ...Producer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		panic(errors.RegistrySealed(f.String()))
	}
	v := mustSemver(f)
	for _, reg := range r.families[f.Name] {
		if reg.version.Equal(v) {
			panic(errors.DuplicateFamily(f.String()))
		}
	}
	r.families[f.Name] = append(r.families[f.Name], registration{
		family:    f,
		version:   v,
		producers: append([]Producer(nil), producers...),
	})
}

// Lookup returns the producers of a family in priority order. An empty
// version selects the highest registered one. It panics when the family is
// not registered.
func (r *Registry) Lookup(f Family) []Producer {
	r.seal()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *registration
	for i := range r.families[f.Name] {
		reg := &r.families[f.Name][i]
		if f.Version == "" {
			if best == nil || reg.version.GreaterThan(best.version) {
				best = reg
			}
			continue
		}
		if v, err := semver.NewVersion(f.Version); err == nil && reg.version.Equal(v) {
			best = reg
			break
		}
	}
	if best == nil {
		panic(errors.UnregisteredFamily(f.String()))
	}
	return best.producers
}

// Resolve picks the highest registered version of name satisfying constraint.
// An empty constraint accepts any version.
func (r *Registry) Resolve(name, constraint string) (Family, error) {
	con, err := parseConstraint(constraint)
	if err != nil {
		return Family{}, fmt.Errorf("family %s: invalid version constraint %q: %w", name, constraint, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *registration
	for i := range r.families[name] {
		reg := &r.families[name][i]
		if !con.Check(reg.version) {
			continue
		}
		if best == nil || reg.version.GreaterThan(best.version) {
			best = reg
		}
	}
	if best == nil {
		if len(r.families[name]) == 0 {
			return Family{}, fmt.Errorf("unknown tokenizer family %q", name)
		}
		return Family{}, fmt.Errorf("no version of family %s satisfies %s", name, con.String())
	}
	return best.family, nil
}

// ResolveSpec resolves "name" or "name@constraint".
func (r *Registry) ResolveSpec(spec string) (Family, error) {
	name, constraint, _ := strings.Cut(spec, "@")
	return r.Resolve(strings.TrimSpace(name), strings.TrimSpace(constraint))
}

// Families lists the registered families ordered by name and version.
func (r *Registry) Families() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []registration
	for _, regs := range r.families {
		all = append(all, regs...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].family.Name != all[j].family.Name {
			return all[i].family.Name < all[j].family.Name
		}
		return all[i].version.LessThan(all[j].version)
	})

	out := make([]Family, len(all))
	for i, reg := range all {
		out[i] = reg.family
	}
	return out
}

// NewDriver looks up a family and returns a driver over its producers.
func (r *Registry) NewDriver(f Family, opts Options) *Driver {
	return NewDriver(r.Lookup(f), opts)
}

func (r *Registry) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func parseConstraint(expr string) (*semver.Constraints, error) {
	if strings.TrimSpace(expr) == "" {
		return semver.NewConstraint(">=0.0.0")
	}
	return semver.NewConstraint(expr)
}

func mustSemver(f Family) *semver.Version {
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		panic(errors.InvalidFamilyVersion(f.String(), err))
	}
	return v
}
