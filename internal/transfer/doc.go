// Package transfer copies selected episodes into a per-show layout under a
// destination root.
//
// Failure handling is two-tier: directory creation errors abort the whole
// run, since they indicate a structurally broken destination (an unmounted
// volume, a read-only card), while individual copy errors are recorded and
// the batch continues, so one locked file cannot block the rest.
// Existing files are never overwritten; re-running a transfer with the same
// selection is safe and cheap.
package transfer
