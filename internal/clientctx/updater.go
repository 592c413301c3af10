package clientctx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/inboxpilot/internal/logging"
	"github.com/teemow/inboxpilot/internal/mail"
)

// Updater applies one email to the per-sender record: load, synthesize,
// merge, store.
type Updater struct {
	store Store
	synth *Synthesizer
	log   *slog.Logger
	now   func() time.Time
}

// NewUpdater creates an Updater.
func NewUpdater(store Store, synth *Synthesizer, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		store: store,
		synth: synth,
		log:   logging.WithStage(logger, "contexts"),
		now:   time.Now,
	}
}

// Process folds the email into the sender's record and persists the
// result. Returns the updated record and whether it was newly created.
func (u *Updater) Process(ctx context.Context, email *mail.Email) (*ClientContext, bool, error) {
	address := mail.SenderAddress(email.From)
	if address == "" {
		return nil, false, fmt.Errorf("email %s has no sender address", email.ID)
	}

	existing, found, err := u.store.Get(address)
	if err != nil {
		return nil, false, err
	}

	delta := u.synth.Synthesize(ctx, email, existing)
	record := Merge(existing, email, delta, u.now())

	if err := u.store.Put(address, record); err != nil {
		return nil, false, err
	}

	u.log.Info("client context updated",
		logging.SenderHash(address),
		slog.Bool("created", !found),
		slog.Int("communications", len(record.Communications)),
		slog.Bool("degraded", delta.Degraded))
	return record, !found, nil
}
