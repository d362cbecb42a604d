package common

import (
	"log/slog"

	"github.com/lexproof/evidence-notary-backend/interfaces"
)

// SlogEventSink publishes component notifications to a structured logger.
type SlogEventSink struct {
	log *slog.Logger
}

// NewSlogEventSink creates an event sink writing to the given logger.
func NewSlogEventSink(log *slog.Logger) *SlogEventSink {
	return &SlogEventSink{log: log}
}

// Publish implements interfaces.EventSink.
func (s *SlogEventSink) Publish(event interfaces.Event) {
	switch ev := event.(type) {
	case interfaces.CaseOpenedEvent:
		s.log.Info("Case opened",
			slog.String("event", ev.EventName()),
			slog.String("partyA", ev.PartyA.Hex()),
			slog.String("partyB", ev.PartyB.Hex()),
			slog.String("caseID", ev.CaseID.String()))
	case interfaces.DocumentFiledEvent:
		s.log.Info("Document filed",
			slog.String("event", ev.EventName()),
			slog.String("hash", ev.Hash.String()),
			slog.String("caseID", ev.CaseID.String()),
			slog.String("storagePointer", ev.StoragePointer))
	case interfaces.FeeChangedEvent:
		s.log.Info("Fee changed",
			slog.String("event", ev.EventName()),
			slog.String("oldFee", ev.OldFee.String()),
			slog.String("newFee", ev.NewFee.String()))
	case interfaces.RegistryAddressChangedEvent:
		s.log.Info("Credential registry repointed",
			slog.String("event", ev.EventName()),
			slog.String("oldAddress", ev.OldAddress.Hex()),
			slog.String("newAddress", ev.NewAddress.Hex()))
	case interfaces.OwnershipTransferredEvent:
		s.log.Info("Ownership transferred",
			slog.String("event", ev.EventName()),
			slog.String("oldOwner", ev.OldOwner.Hex()),
			slog.String("newOwner", ev.NewOwner.Hex()))
	case interfaces.FundsWithdrawnEvent:
		s.log.Info("Funds withdrawn",
			slog.String("event", ev.EventName()),
			slog.String("to", ev.To.Hex()),
			slog.String("amount", ev.Amount.String()))
	default:
		s.log.Info("Event", slog.String("event", event.EventName()))
	}
}
