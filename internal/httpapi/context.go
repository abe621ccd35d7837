package httpapi

import (
	"context"
)

// serverBaseCtx is canceled when the daemon begins shutting down. Predict
// handlers derive from it so a graceful stop aborts an in-flight bundle
// download instead of waiting out the full download timeout.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level context joined into every
// predict request. A nil ctx resets to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context canceled when either the server base
// context or the request context is done, whichever fires first. The cancel
// func must be called when the handler returns to release the watcher.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-a.Done():
			cancel()
		case <-b.Done():
			cancel()
		}
	}()
	return ctx, cancel
}
