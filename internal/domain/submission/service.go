package submission

import (
	"context"
	"log/slog"
)

// Service composes the codec and the store: encode-on-write,
// decode-on-read with per-record failure isolation.
type Service struct {
	Store *Store
	Codec *Codec
}

func NewService(store *Store, codec *Codec) *Service {
	return &Service{Store: store, Codec: codec}
}

// Submit encodes an already-validated submission and persists it, returning
// the generated identifier.
func (s *Service) Submit(ctx context.Context, sub Submission) (int64, error) {
	rec, err := s.Codec.Encode(sub)
	if err != nil {
		return 0, err
	}
	return s.Store.Insert(ctx, rec)
}

// List fetches all stored records and decodes them. Undecodable rows are
// logged and dropped; the count of failures is returned so callers can
// surface it without aborting the batch.
func (s *Service) List(ctx context.Context) ([]DecodedRecord, int, error) {
	recs, err := s.Store.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	decoded, failures := s.Codec.DecodeAll(recs)
	for _, failure := range failures {
		slog.Warn("stored record undecodable", "recordId", failure.RecordID, "err", failure.Err)
	}
	return decoded, len(failures), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Store.Count(ctx)
}
