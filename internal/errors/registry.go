package errors

import "sort"

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
	// VNode and runtime errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryVNode,
		Message:  "Invalid vnode",
		Detail:   "A tree contained a node that cannot be rendered: an element without a tag, a component without a render function, a component that rendered nothing, or duplicate sibling keys.",
	},
	"E101": {
		Category:   CategoryVNode,
		Message:    "Invalid prop",
		Detail:     "An element carried a prop the runtime refuses to handle.",
		Suggestion: `Use "class" instead of "className"`,
	},
	"E102": {
		Category: CategoryRuntime,
		Message:  "Component render failed",
		Detail:   "A component render function returned an error or panicked. The document was left as it was after the last successful commit.",
	},
	"E103": {
		Category: CategoryRuntime,
		Message:  "Event dispatch failed",
		Detail:   "The event target no longer exists or an event handler returned an error.",
	},
	"E104": {
		Category: CategoryRuntime,
		Message:  "Navigation failed",
		Detail:   "The navigation target could not be resolved or is on another origin.",
	},
	"E105": {
		Category: CategoryRuntime,
		Message:  "Unknown client message",
		Detail:   "A live session received a message type it does not handle.",
	},

	// ============================================
	// Configuration errors (E120-E139)
	// ============================================

	"E120": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Detail:     "No sprig.json was found in the project directory.",
		Suggestion: "Run the command from the project root or pass --config",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration JSON",
		Detail:   "sprig.json could not be parsed.",
	},
	"E122": {
		Category:   CategoryConfig,
		Message:    "Invalid port",
		Suggestion: "Use a port between 1 and 65535",
	},
	"E123": {
		Category:   CategoryConfig,
		Message:    "Invalid route path",
		Detail:     "Export paths must be absolute and must not contain parameters.",
		Suggestion: `Write paths like "/about"`,
	},
	"E124": {
		Category:   CategoryConfig,
		Message:    "Publish target incomplete",
		Detail:     "An s3 publish target needs a bucket and a region.",
		Suggestion: `Set "publish.bucket" and "publish.region" in sprig.json`,
	},
	"E125": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// CLI errors (E140-E159)
	// ============================================

	"E140": {
		Category:   CategoryCLI,
		Message:    "Port already in use",
		Suggestion: "Stop the other process or pass --port",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Export failed",
		Detail:   "One or more pages could not be rendered or published.",
	},
	"E143": {
		Category:   CategoryCLI,
		Message:    "Project already initialized",
		Suggestion: "Pass --force to overwrite the existing sprig.json",
	},
	"E144": {
		Category:   CategoryCLI,
		Message:    "Invalid command line",
		Suggestion: "Run sprig --help for usage",
	},

	// ============================================
	// Publish errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryPublish,
		Message:  "Upload failed",
	},
	"E161": {
		Category:   CategoryPublish,
		Message:    "Missing credentials",
		Suggestion: "Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY",
	},
}

// GetAllCodes returns all registered error codes in order.
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
