// Package device watches for removable storage being attached or detached,
// so a destination can be offered as soon as the media shows up. Only Linux
// has a live implementation (udev netlink); other platforms report
// ErrUnsupported and callers fall back to manual destination selection.
package device

import "errors"

// ErrUnsupported indicates device monitoring is not available on this platform.
var ErrUnsupported = errors.New("device monitoring is not supported on this platform")

// Event describes one removable-media change.
type Event struct {
	// Action is "add" or "remove".
	Action string
	// Node is the device node, e.g. /dev/sdb1.
	Node string
	// Label is the filesystem label when the event carried one.
	Label string
}
