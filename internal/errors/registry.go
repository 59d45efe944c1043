package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Hydration Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryHydration,
		Message:  "No hydration payload",
		Detail:   "The page carries no script element of the reserved payload type. The runtime cannot boot without one.",
	},
	"E002": {
		Category: CategoryHydration,
		Message:  "Multiple hydration payloads",
		Detail:   "The page carries more than one payload element. The boot contract requires exactly one.",
	},
	"E003": {
		Category: CategoryHydration,
		Message:  "Malformed hydration payload",
		Detail:   "The payload text did not parse, or one of the required members (ctx, objs, subs) is missing.",
	},
	"E004": {
		Category: CategoryHydration,
		Message:  "Malformed subscription pair",
		Detail:   "Subscription entries must be exactly two space-separated integers: the node id and the generation.",
	},
	"E005": {
		Category: CategoryHydration,
		Message:  "Payload does not match component state",
		Detail:   "A component failed to rebuild its state from the payload. The object table slot does not decode into the shape the component resumes.",
	},
	"E006": {
		Category: CategoryHydration,
		Message:  "Subscription stack mismatch",
		Detail:   "Each hydrated component consumes one subscription group at boot. The stack depth must equal the number of context bindings.",
	},

	// ============================================
	// Protocol Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryProtocol,
		Message:  "Unclosed region marker",
		Detail:   "An opening region comment has no matching /av comment among its later siblings.",
	},
	"E021": {
		Category: CategoryProtocol,
		Message:  "Unmatched region end marker",
		Detail:   "A /av comment closes no open region.",
	},
	"E022": {
		Category: CategoryProtocol,
		Message:  "Region marker has no id",
		Detail:   "Opening region comments must carry an a:id attribute naming the region.",
	},
	"E023": {
		Category: CategoryProtocol,
		Message:  "Malformed marker attribute",
		Detail:   "Attributes in an opening region comment must be key=value pairs.",
	},
	"E024": {
		Category: CategoryProtocol,
		Message:  "Duplicate region id",
		Detail:   "Two opening markers carry the same a:id. Re-render requests would address only the later one.",
	},
	"E025": {
		Category: CategoryProtocol,
		Message:  "Context binding references unknown region",
		Detail:   "A ctx entry names a region id that no opening marker in the page carries.",
	},
	"E026": {
		Category: CategoryProtocol,
		Message:  "Recall id in served markup",
		Detail:   "rid attributes are assigned by the runtime when nodes are materialized. One in served markup would collide with the runtime's own ids.",
	},

	// ============================================
	// Validation Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryValidation,
		Message:  "Context node id is not numeric",
		Detail:   "Context bindings are keyed by component node ids, which appear in subscription pairs as integers.",
	},
	"E041": {
		Category: CategoryValidation,
		Message:  "Subscription for unknown node",
		Detail:   "A subscription pair names a node id with no context binding, so no component resumes it.",
	},

	// ============================================
	// CLI Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryCLI,
		Message:  "Cannot read input file",
		Detail:   "The named file does not exist or is not readable.",
	},
	"E061": {
		Category: CategoryCLI,
		Message:  "Cannot parse page",
		Detail:   "The input file does not parse as HTML.",
	},
	"E062": {
		Category: CategoryCLI,
		Message:  "Malformed scenario",
		Detail:   "The scenario file did not decode, or a step names no operation.",
	},
	"E063": {
		Category: CategoryCLI,
		Message:  "Scenario expectation failed",
		Detail:   "A region's content did not match what the scenario step expects.",
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

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
