package corpus

import "context"

// Stats holds aggregated statistics for the corpus.
type Stats struct {
	Texts   int // The number of stored texts.
	Symbols int // The total number of runes across all texts.
}

// Stats returns a snapshot of corpus statistics.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.stmtCount.QueryRowContext(ctx).Scan(&stats.Texts); err != nil {
		return Stats{}, err
	}
	if err := s.stmtSymbols.QueryRowContext(ctx).Scan(&stats.Symbols); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
