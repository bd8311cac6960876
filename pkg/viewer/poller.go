package viewer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

// Poller refreshes the session in the background.
type Poller struct {
	session  *Session
	interval time.Duration
}

// NewPoller creates a poller, an interval <= 0 disables it.
func NewPoller(session *Session, interval time.Duration) *Poller {
	return &Poller{session: session, interval: interval}
}

// Start polls until ctx is canceled.  Ticks are skipped while a fetch is running or the
// credentials are incomplete.
func (p *Poller) Start(ctx context.Context) {
	if p.interval <= 0 {
		return
	}
	logger := log.With().Str("module", "viewer").Str("phase", "poll").Logger()
	logger.Info().Dur("interval", p.interval).Msg("Polling for new emails")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if p.session.Fetching() {
		return
	}
	conf := p.session.Settings()
	if (testmail.Query{APIKey: conf.APIKey, Namespace: conf.Namespace}).Validate() != nil {
		return
	}
	n, err := p.session.Fetch(ctx)
	switch {
	case errors.Is(err, ErrFetchInProgress):
	case err != nil:
		log.Debug().Str("module", "viewer").Err(err).Msg("Poll failed")
	default:
		log.Debug().Str("module", "viewer").Int("listed", n).Msg("Poll complete")
	}
}
