package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across the service. Handlers map them to
// HTTP status codes; everything untagged is treated as internal.
var (
	// TagValidation marks malformed caller input (empty message, bad ID)
	TagValidation = goerr.NewTag("validation")

	// TagNotFound marks a reference to an entity that does not exist
	TagNotFound = goerr.NewTag("not_found")

	// TagRateLimit marks a rejected request from the rate limiter
	TagRateLimit = goerr.NewTag("rate_limit")

	// TagStorage marks persistence failures, including corrupted documents
	TagStorage = goerr.NewTag("storage")

	// TagUpstream marks LLM collaborator failures (timeout, quota, bad response)
	TagUpstream = goerr.NewTag("upstream")
)
