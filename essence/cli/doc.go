package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'essence.cli'
func tracer() tracing.Trace {
	return tracing.Select("essence.cli")
}
