package vtree

import "github.com/vango-dev/vtree/pkg/view"

// Op is the kind of change a pass made to the live hierarchy.
type Op uint8

const (
	OpMount   Op = 0x01 // New view inserted
	OpReuse   Op = 0x02 // Existing view kept and reconfigured
	OpMove    Op = 0x03 // Existing view moved to a new index
	OpUnmount Op = 0x04 // View removed
	OpReplace Op = 0x05 // Root view swapped because composite keys differ
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpMount:
		return "Mount"
	case OpReuse:
		return "Reuse"
	case OpMove:
		return "Move"
	case OpUnmount:
		return "Unmount"
	case OpReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// MarshalText lets Op appear by name in JSON.
func (op Op) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// Mutation is a single change applied during a pass.
type Mutation struct {
	Op     Op     `json:"op"`
	Key    string `json:"key"`              // Composite key of the affected node
	Parent string `json:"parent,omitempty"` // Composite key of the parent node
	Index  int    `json:"index"`            // Position within the parent
}

// Stats summarises a pass.
type Stats struct {
	Created  int `json:"created"`
	Recycled int `json:"recycled"`
	Reused   int `json:"reused"`
	Moved    int `json:"moved"`
	Removed  int `json:"removed"`
	Replaced int `json:"replaced"`
}

// Changed reports whether the pass altered the structure of the hierarchy.
func (s Stats) Changed() bool {
	return s.Created+s.Recycled+s.Moved+s.Removed+s.Replaced > 0
}

// Pass is the result of one reconciliation.
type Pass struct {
	Mutations []Mutation `json:"mutations"`
	Stats     Stats      `json:"stats"`

	released []released
}

type released struct {
	key  string
	view view.View
}

func (p *Pass) record(op Op, key, parent string, index int) {
	p.Mutations = append(p.Mutations, Mutation{Op: op, Key: key, Parent: parent, Index: index})
}

// Count returns how many mutations of kind op the pass recorded.
func (p *Pass) Count(op Op) int {
	n := 0
	for _, m := range p.Mutations {
		if m.Op == op {
			n++
		}
	}
	return n
}
