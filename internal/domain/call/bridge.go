package call

import "context"

// MediaBridge notifies the conversational pipeline that a call's media path
// is being handed off to a human. The implementation lives with the pipeline
// consumer; the broker only owns this boundary.
//
// Detach is fire-and-forget: a failure to detach is logged by the caller and
// never propagated, because the provider-side dial takes effect regardless.
type MediaBridge interface {
	Detach(ctx context.Context, callID, streamPath string) error
}
