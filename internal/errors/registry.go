package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reconciliation Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryReconcile,
		Message:  "Node has no create function",
		Detail:   "Every node must be constructed with a function that creates its view. There is no default view for a node.",
	},
	"E002": {
		Category: CategoryReconcile,
		Message:  "Create function returned a nil view",
		Detail:   "A node's create function must return a non-nil view.",
	},
	"E003": {
		Category: CategoryReconcile,
		Message:  "View type mismatch",
		Detail:   "The view adopted for a node is not of the concrete type the node was declared with. Two node types share an identifier.",
	},
	"E004": {
		Category: CategoryReconcile,
		Message:  "Reconciliation pass already in progress",
		Detail:   "A render pass was started while another pass against the same hierarchy was still running. Passes must not overlap or re-enter.",
	},
	"E005": {
		Category: CategoryReconcile,
		Message:  "Node already built",
		Detail:   "A node was asked to adopt a different view after it was built in this pass. Nodes are single-use: construct a new tree for every render.",
	},
	"E006": {
		Category: CategoryReconcile,
		Message:  "Host container is nil",
		Detail:   "A render host needs a container view to mount its tree into.",
	},

	// ============================================
	// List Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryDiff,
		Message:  "List update applied out of order",
		Detail:   "Row deletions must be applied against the old row count before insertions are applied against the new one.",
	},

	// ============================================
	// Configuration Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Configuration read failed",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Unknown configuration format",
		Detail:   "Configuration files must end in .json, .yaml or .yml.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No vtree.json or vtree.yaml was found.",
	},

	// ============================================
	// Archive Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryArchive,
		Message:  "Snapshot archive failure",
		Detail:   "The snapshot store returned an error.",
	},
	"E161": {
		Category: CategoryArchive,
		Message:  "Snapshot not found",
		Detail:   "No snapshot with this name exists in the archive.",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
