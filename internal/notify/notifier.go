package notify

import (
	"context"
	"fmt"
	"io"
	"log"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Notifier defines the interface for sending promotion notifications.
type Notifier interface {
	NotifyStatementPromoted(ctx context.Context, e StatementPromotedEvent) error
	NotifyAutoPromotionRun(ctx context.Context, e AutoPromotionEvent) error
}

// NoopNotifier is a no-op implementation used when notifications are disabled.
type NoopNotifier struct{}

func (NoopNotifier) NotifyStatementPromoted(context.Context, StatementPromotedEvent) error { return nil }
func (NoopNotifier) NotifyAutoPromotionRun(context.Context, AutoPromotionEvent) error      { return nil }

// ShoutrrrNotifier delivers notifications to one or more shoutrrr service
// URLs (slack://, discord://, smtp://, ...).
type ShoutrrrNotifier struct {
	sender *router.ServiceRouter
}

func NewShoutrrrNotifier(urls ...string) (*ShoutrrrNotifier, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one notification URL is required")
	}
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("create sender: %w", err)
	}
	sender.SetLogger(log.New(io.Discard, "", 0))
	return &ShoutrrrNotifier{sender: sender}, nil
}

func (n *ShoutrrrNotifier) NotifyStatementPromoted(_ context.Context, e StatementPromotedEvent) error {
	actor := e.PromotedBy
	if e.Manual {
		actor += " (manual override)"
	}
	body := fmt.Sprintf("%q is now a documented case (/%s).\nScore: %d\nPromoted by: %s",
		e.CaseTitle, e.CaseSlug, e.Score, actor)
	return n.send("Statement promoted", body)
}

func (n *ShoutrrrNotifier) NotifyAutoPromotionRun(_ context.Context, e AutoPromotionEvent) error {
	body := fmt.Sprintf("Auto-promotion run: %d scanned, %d promoted, %d failed",
		e.Scanned, e.Promoted, e.Failed)
	return n.send("Auto-promotion completed", body)
}

func (n *ShoutrrrNotifier) send(title, body string) error {
	params := stypes.Params{}
	params.SetTitle(title)
	for _, err := range n.sender.Send(body, &params) {
		if err != nil {
			return err
		}
	}
	return nil
}
