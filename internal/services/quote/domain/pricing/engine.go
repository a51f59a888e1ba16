// Package pricing turns an event description into an itemized, auditable
// catering quote using fixed lookup tables and unit costs.
//
// An Engine is immutable after New and safe for concurrent use. Edits to a
// generated quote go through ApplyEdit and Aggregate and never re-run the
// table lookups.
package pricing

import "fmt"

// Engine prices events against one validated configuration.
type Engine struct {
	cfg Config
}

// New validates cfg and returns an engine holding a private copy of it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg.clone()}, nil
}

// MustNew is New for configurations known to be valid at build time.
func MustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("pricing: %v", err))
	}
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg.clone()
}

// Rates returns the pricing rates used by Aggregate.
func (e *Engine) Rates() Rates {
	return e.cfg.Rates
}

// Calculate prices spec.
func (e *Engine) Calculate(spec EventSpec) (Quote, error) {
	normalized, err := e.NormalizeSpec(spec)
	if err != nil {
		return Quote{}, err
	}
	items, err := e.buildLineItems(normalized)
	if err != nil {
		return Quote{}, err
	}
	return Aggregate(e.cfg.Rates, normalized.GuestCount, items)
}

// Reconcile applies edits to items and re-aggregates them with the engine
// rates. Rejected edits are skipped and reported in the returned error; the
// quote still reflects every accepted edit.
func (e *Engine) Reconcile(guests int, items []LineItem, edits ...Edit) (Quote, error) {
	return Reconcile(e.cfg.Rates, guests, items, edits...)
}

// BuildLineItems returns the ordered cost lines for spec.
func (e *Engine) BuildLineItems(spec EventSpec) ([]LineItem, error) {
	normalized, err := e.NormalizeSpec(spec)
	if err != nil {
		return nil, err
	}
	return e.buildLineItems(normalized)
}

func (e *Engine) buildLineItems(spec EventSpec) ([]LineItem, error) {
	b := &lineBuilder{inputTax: e.cfg.Rates.InputTax}
	steps := []func(*lineBuilder, EventSpec) error{
		e.addFood,
		e.addLabor,
		e.addLogistics,
		e.addEquipment,
		e.addExtras,
	}
	for _, step := range steps {
		if err := step(b, spec); err != nil {
			return nil, err
		}
	}
	return b.items, nil
}
