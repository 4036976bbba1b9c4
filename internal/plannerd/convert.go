package plannerd

// planToJSON converts a PlanRecord to its API representation.
func planToJSON(rec *PlanRecord) map[string]any {
	out := map[string]any{
		"id":            rec.ID,
		"status":        string(rec.Status),
		"created_at_ms": rec.CreatedAtUnixMs,
	}
	if rec.StartedAtUnixMs > 0 {
		out["started_at_ms"] = rec.StartedAtUnixMs
	}
	if rec.EndedAtUnixMs > 0 {
		out["ended_at_ms"] = rec.EndedAtUnixMs
	}
	if rec.Error != "" {
		out["error"] = rec.Error
	}
	if rec.Input != nil {
		out["input"] = rec.Input
	}
	if rec.Progress != nil {
		out["progress"] = rec.Progress
	}
	if rec.Result != nil {
		out["score"] = rec.Result.Score
		out["diagnostics"] = rec.Result.Diagnostics
	}
	return out
}
