package service

// GetStats returns statistics of the last run.
func (s *Service) GetStats() map[string]any {
	ingested := s.ingestedBySource()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"run_id":      s.runID,
		"ingested":    ingested,
		"dropped":     copyCounts(s.stats.dropped),
		"outcomes":    copyCounts(s.stats.outcomes),
		"jobs":        s.stats.jobs,
		"cached_jobs": s.stats.cached,
		"failed_jobs": s.stats.failed,
		"duration_ms": s.stats.duration.Milliseconds(),
	}
	if s.agg != nil {
		stats["leaderboards"] = s.agg.Len()
	}
	if s.deduper != nil {
		stats["distinct_performances"] = s.deduper.Size()
	}
	return stats
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
