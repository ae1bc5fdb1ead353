// Package gl declares the graphics capability surface that glbridge
// intercepts.
//
// The surface is an explicit Go interface (Context) rather than a live
// object enumerated at runtime. Opaque host resources are represented by
// *Handle values that carry a correlation id once the bridge has stamped
// them. Texture upload payloads are modeled by the Canvas, ImageData and
// VideoFrame types so the encoder can tell the call shapes apart.
package gl
