// Package normalize rewrites call arguments whose Go values cannot be
// serialized as-is.
//
// Hooks operate on a Draft, a private copy of the argument list destined
// for the descriptor. The arguments handed to the real context are never
// modified.
package normalize
