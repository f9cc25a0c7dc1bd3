package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/riskibarqy/finalpoint-client/internal/usecase"
)

const msgSessionExpired = "Session expired. Please log in again."

// Notifier prints usecase notices as one line each, usually to stderr.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles map[usecase.NoticeLevel]*color.Color
}

var _ usecase.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer, colorEnabled bool) *Notifier {
	n := &Notifier{
		out: out,
		styles: map[usecase.NoticeLevel]*color.Color{
			usecase.NoticeSuccess: color.New(color.FgGreen),
			usecase.NoticeError:   color.New(color.FgRed),
			usecase.NoticeInfo:    color.New(color.FgCyan),
		},
	}
	for _, c := range n.styles {
		if colorEnabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return n
}

func (n *Notifier) Notify(level usecase.NoticeLevel, message string) {
	style, ok := n.styles[level]
	if !ok {
		style = n.styles[usecase.NoticeInfo]
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", style.Sprintf("[%s]", level), message)
}

// SessionGuard is the client's unauthorized hook. The first 401 of a run
// prints the expiry notice; the CLI then exits with exitSessionExpired.
type SessionGuard struct {
	notifier usecase.Notifier
	expired  atomic.Bool
	once     sync.Once
}

func NewSessionGuard(notifier usecase.Notifier) *SessionGuard {
	return &SessionGuard{notifier: notifier}
}

func (g *SessionGuard) OnUnauthorized(context.Context) {
	g.expired.Store(true)
	g.once.Do(func() {
		if g.notifier != nil {
			g.notifier.Notify(usecase.NoticeError, msgSessionExpired)
		}
	})
}

func (g *SessionGuard) Expired() bool {
	return g.expired.Load()
}
