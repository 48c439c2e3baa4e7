package probe

import (
	"net/http"
	"slices"
)

// HTTPStatusExpectation reports whether a response status counts as healthy.
type HTTPStatusExpectation func(status int) bool

// HTTPRequestMutator edits the probe request before it is sent, e.g. to add
// headers.
type HTTPRequestMutator func(req *http.Request) error

// HTTPProbeOption configures NewHTTPProbe.
type HTTPProbeOption func(*httpProbeConfig)

type httpProbeConfig struct {
	client   HTTPDoer
	expect   HTTPStatusExpectation
	mutators []HTTPRequestMutator
}

func newHTTPProbeConfig(client HTTPDoer, opts []HTTPProbeOption) httpProbeConfig {
	cfg := httpProbeConfig{client: client, expect: successStatus}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	return cfg
}

func (c httpProbeConfig) prepare(req *http.Request) error {
	for _, mutate := range c.mutators {
		if err := mutate(req); err != nil {
			return err
		}
	}
	return nil
}

// WithHTTPAllowedStatuses accepts exactly the given statuses. Without
// statuses any 2xx is accepted.
func WithHTTPAllowedStatuses(statuses ...int) HTTPProbeOption {
	allowed := slices.Clone(statuses)
	return func(cfg *httpProbeConfig) {
		if len(allowed) == 0 {
			cfg.expect = successStatus
			return
		}
		cfg.expect = func(status int) bool {
			return slices.Contains(allowed, status)
		}
	}
}

// WithHTTPRequestMutator adds a mutator. Mutators run in the order given.
func WithHTTPRequestMutator(mutator HTTPRequestMutator) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		if mutator != nil {
			cfg.mutators = append(cfg.mutators, mutator)
		}
	}
}

func successStatus(status int) bool {
	return status >= 200 && status < 300
}
