package reagent

import "context"

// Client is the LLM provider seam. The agent loop calls it once per step with
// the full transcript and expects the raw reply text back, unmodified. No
// interpretation of content happens behind this interface.
//
// Implementations own serialization into the provider's wire shape, sampling
// parameters, per-attempt timeouts, and retry policy. Failures should be
// returned as *ClientError so the loop can report a classified fatal result;
// see the models package for the langchaingo-backed implementation and the
// Retry decorator.
type Client interface {
	Complete(ctx context.Context, transcript *Transcript) (string, error)
}

// ClientFunc adapts a function into a Client. Handy for stubs in tests.
type ClientFunc func(ctx context.Context, transcript *Transcript) (string, error)

// Complete implements Client.
func (f ClientFunc) Complete(ctx context.Context, transcript *Transcript) (string, error) {
	return f(ctx, transcript)
}
