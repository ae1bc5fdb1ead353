// Package bridge installs interception over a graphics context and its
// frame primitive.
//
// A Bridge owns the per-process state: the correlation counter (through its
// encoder), the classification table and the frame callback queue. Wrap
// returns a Proxy implementing gl.Context; every call on the proxy is
// classified, encoded and delivered to the host through the bridge's
// transport.
//
//	b := bridge.New(host, bridge.WithLogger(logger))
//	ctx, err := b.Wrap(nil, bridge.CreationOptions{Width: 800, Height: 600})
//	frames, err := b.InstallFrames(platform)
//	frames.RequestAnimationFrame(draw)
//
// In local mode (PassThrough) the real context executes every call and the
// host only observes. In bridged mode the real context is never called.
package bridge
