//go:build !linux

package device

import (
	"context"
	"log/slog"
)

// Monitor is a stub on platforms without udev.
type Monitor struct{}

// NewMonitor constructs the stub monitor.
func NewMonitor(logger *slog.Logger) *Monitor {
	return &Monitor{}
}

// Start always reports ErrUnsupported.
func (m *Monitor) Start(ctx context.Context, events chan<- Event) error {
	return ErrUnsupported
}

// Stop is a no-op.
func (m *Monitor) Stop() {}
