//go:build linux

package device

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"podhaul/internal/logging"
)

// Monitor listens for udev netlink events for block partitions.
type Monitor struct {
	logger *slog.Logger

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewMonitor constructs an idle monitor.
func NewMonitor(logger *slog.Logger) *Monitor {
	return &Monitor{logger: logging.NewComponentLogger(logger, "device-monitor")}
}

// Start connects to the kernel uevent socket and delivers partition
// attach/detach events on the channel until Stop is called or the context
// ends. The channel is not closed by the monitor.
func (m *Monitor) Start(ctx context.Context, events chan<- Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	go m.monitorLoop(ctx, m.quit, events)

	m.logger.Info("device monitor started")
	return nil
}

// Stop shuts the monitor down. Safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false
	m.logger.Info("device monitor stopped")
}

func (m *Monitor) monitorLoop(ctx context.Context, quit <-chan struct{}, events chan<- Event) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, partitionMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			event, ok := translate(uevent)
			if !ok {
				continue
			}
			m.logger.Debug("device event",
				logging.String("action", event.Action),
				logging.String("node", event.Node),
			)
			select {
			case events <- event:
			case <-quit:
				close(monitorQuit)
				return
			}
		case err := <-errs:
			m.logger.Warn("device monitor error", logging.Error(err))
		}
	}
}

// partitionMatcher restricts events to block partitions appearing or going
// away, which is what a removable device mount produces.
func partitionMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"DEVTYPE":   "partition",
		},
	})
	return rules
}

func translate(uevent netlink.UEvent) (Event, bool) {
	node := uevent.Env["DEVNAME"]
	if node == "" {
		return Event{}, false
	}
	return Event{
		Action: string(uevent.Action),
		Node:   node,
		Label:  uevent.Env["ID_FS_LABEL"],
	}, true
}
