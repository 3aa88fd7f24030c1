package sampler

import "github.com/antchfx/xmlquery"

// Records is an ordered set of sampled metadata records keyed by identifier. An
// empty set is a valid state.
type Records struct {
	ids  []string
	byID map[string]*xmlquery.Node
}

// NewRecords returns an empty record set.
func NewRecords() *Records {
	return &Records{byID: make(map[string]*xmlquery.Node)}
}

// Add stores a record unless its identifier is empty or already present.
func (r *Records) Add(id string, record *xmlquery.Node) bool {
	if id == "" || record == nil {
		return false
	}
	if _, exists := r.byID[id]; exists {
		return false
	}
	r.ids = append(r.ids, id)
	r.byID[id] = record
	return true
}

// Len returns the number of records.
func (r *Records) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}

// IDs returns the identifiers in sampling order.
func (r *Records) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.ids...)
}

// Get returns the record with the given identifier.
func (r *Records) Get(id string) (*xmlquery.Node, bool) {
	if r == nil {
		return nil, false
	}
	n, ok := r.byID[id]
	return n, ok
}

// Each calls fn for every record in sampling order until fn returns false.
func (r *Records) Each(fn func(id string, record *xmlquery.Node) bool) {
	if r == nil {
		return
	}
	for _, id := range r.ids {
		if !fn(id, r.byID[id]) {
			return
		}
	}
}
