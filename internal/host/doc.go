// Package host is a reference execution host for the bridge protocol.
//
// It sits on the far side of a transport.Transport and batches messages the
// way a render thread consumes them:
//
//	outside a frame:  message -> pending
//	startFrame:       pending -> pre-frame batch
//	inside a frame:   message -> frame batch
//	endFrame:         frame batch -> published frame
//
// The render side calls Update to run the pre-frame batch and RenderFrame
// to run the published frame. The published frame is kept, so a render
// thread faster than the caller redraws the last complete frame.
//
// The host never touches a GPU. Execution is delegated to an Executor.
package host
