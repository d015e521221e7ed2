package service

import (
	"context"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/importer"
)

type transferService struct {
	store *Store
	tips  *TipTracker
}

// NewTransferService wires export, import and reset. Replacing the state
// abandons every pending tip; tips may be nil.
func NewTransferService(store *Store, tips *TipTracker) TransferService {
	return &transferService{store: store, tips: tips}
}

func (s *transferService) Export(ctx context.Context) ([]byte, error) {
	var out []byte
	err := observe(ctx, s.store.observer, "data.export", nil, func() error {
		var err error
		out, err = importer.Export(s.store.Snapshot(), s.store.Now())
		return err
	})
	return out, err
}

// Preview parses raw without touching the store.
func (s *transferService) Preview(raw []byte) (*domain.AppState, importer.Preview, error) {
	state, err := importer.Parse(raw)
	if err != nil {
		return nil, importer.Preview{}, err
	}
	return state, importer.Summarize(state), nil
}

func (s *transferService) Import(ctx context.Context, state *domain.AppState) error {
	if err := s.store.Dispatch(ctx, &ReplaceState{State: state}); err != nil {
		return err
	}
	s.dropTips()
	return nil
}

func (s *transferService) Reset(ctx context.Context) error {
	if err := s.store.Dispatch(ctx, ResetAll{}); err != nil {
		return err
	}
	s.dropTips()
	return nil
}

func (s *transferService) dropTips() {
	if s.tips != nil {
		s.tips.InvalidateAll()
	}
}
