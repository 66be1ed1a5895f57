package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reconcile Errors (E001-E009)
	// ============================================

	"E001": {
		Category:   CategoryReconcile,
		Message:    "Operation path does not resolve",
		Suggestion: "The target tree was changed outside the renderer; discard the retained tree and re-render from scratch",
	},
	"E002": {
		Category: CategoryReconcile,
		Message:  "Operation not applicable to target node",
	},
	"E003": {
		Category: CategoryMaterialize,
		Message:  "Abstract node cannot be materialized",
	},
	"E004": {
		Category: CategoryProtocol,
		Message:  "Malformed operation path",
	},
	"E005": {
		Category: CategoryProtocol,
		Message:  "Malformed tree or operation encoding",
	},

	// ============================================
	// View Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryView,
		Message:  "Main template failed",
		Detail:   "The template function returned an error or panicked; the fallback template is used instead.",
	},
	"E011": {
		Category: CategoryView,
		Message:  "Fallback template failed",
		Detail:   "Both the main and the fallback template failed; nothing is rendered.",
	},
	"E012": {
		Category: CategoryView,
		Message:  "Renderer desynchronized",
		Detail:   "The mounted tree no longer matches the retained tree; a full rebuild was performed.",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check that vdiff.json is valid JSON",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid log configuration",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid server configuration",
	},
	"E141": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create vdiff.json or pass --config",
	},

	// ============================================
	// CLI Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryCLI,
		Message:  "Cannot read input file",
	},
	"E151": {
		Category: CategoryCLI,
		Message:  "Cannot decode input tree",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
