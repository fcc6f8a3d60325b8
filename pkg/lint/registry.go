package lint

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/yaklabco/mdlinker/pkg/config"
)

// Detector produces the findings of one kind.
type Detector interface {
	// Kind returns the kind of finding this detector emits.
	Kind() Kind

	// Description returns a one sentence description of what is checked.
	Description() string

	// DefaultEnabled returns whether the detector runs without configuration.
	DefaultEnabled() bool

	// Detect runs the detector. It must not modify the analysis and returns an
	// error only for internal failures, never for violations.
	Detect(ctx context.Context, a *Analysis) ([]Finding, error)
}

// baseDetector carries the static metadata of a detector.
type baseDetector struct {
	kind Kind
	desc string
}

func (d *baseDetector) Kind() Kind           { return d.kind }
func (d *baseDetector) Description() string  { return d.desc }
func (d *baseDetector) DefaultEnabled() bool { return true }

// Registry holds the available detectors.
type Registry struct {
	mu     sync.RWMutex
	byKind map[Kind]Detector
}

// NewRegistry creates an empty detector registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[Kind]Detector)}
}

// Register adds a detector, replacing any detector of the same kind.
func (r *Registry) Register(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[d.Kind()] = d
}

// Get retrieves the detector for a kind.
func (r *Registry) Get(kind Kind) (Detector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKind[kind]
	return d, ok
}

// Detectors returns all registered detectors in kind order.
func (r *Registry) Detectors() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Detector, 0, len(r.byKind))
	for _, d := range r.byKind {
		result = append(result, d)
	}
	slices.SortFunc(result, func(a, b Detector) int {
		return cmp.Compare(a.Kind(), b.Kind())
	})
	return result
}

// Resolve returns the detectors enabled by cfg, in kind order.
// Per-kind rules apply first, then the CLI enable and disable lists.
func (r *Registry) Resolve(cfg *config.Config) []Detector {
	var enabled []Detector
	for _, d := range r.Detectors() {
		if detectorEnabled(d, cfg) {
			enabled = append(enabled, d)
		}
	}
	return enabled
}

func detectorEnabled(d Detector, cfg *config.Config) bool {
	on := d.DefaultEnabled()
	if cfg == nil {
		return on
	}

	name := d.Kind().String()
	if rc, ok := cfg.Rules[name]; ok && rc.Enabled != nil {
		on = *rc.Enabled
	}
	if slices.Contains(cfg.EnableRules, name) {
		on = true
	}
	if slices.Contains(cfg.DisableRules, name) {
		on = false
	}
	return on
}

// DefaultRegistry holds the built-in detectors.
//
//nolint:gochecknoglobals // Global registry is intentional for detector registration
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(newSimilarDetector())
	DefaultRegistry.Register(newDuplicateAliasDetector())
	DefaultRegistry.Register(newBrokenLinkDetector())
	DefaultRegistry.Register(newUnlinkedTextDetector())

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		detectors := DefaultRegistry.Detectors()
		infos := make([]config.RuleInfo, 0, len(detectors))
		for _, d := range detectors {
			infos = append(infos, config.RuleInfo{
				Name:        d.Kind().String(),
				Description: d.Description(),
				Enabled:     d.DefaultEnabled(),
			})
		}
		return infos
	}
}
