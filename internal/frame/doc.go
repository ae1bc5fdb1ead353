// Package frame brackets animation callbacks with frame signals.
//
// A Scheduler stands in for the platform's "run this on the next frame"
// primitive. Callbacks run one per platform tick, in registration order,
// and each runs between a startFrame and an endFrame message sent to the
// host. At most one platform request is outstanding at any time.
//
//	Idle --register--> Scheduled --tick--> Running --done--> Idle
//	                       ^                  |
//	                       +---- queue not empty
package frame
