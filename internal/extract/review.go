package extract

// Review partitions extractions by confidence: results at or above the
// threshold are accepted, the rest go to the manual review queue. The
// partition is pure; inputs are not modified and order is preserved.
func Review(results []*Extraction, threshold float64) (accepted, review []*Extraction) {
	for _, r := range results {
		if r.Confidence >= threshold {
			accepted = append(accepted, r)
		} else {
			review = append(review, r)
		}
	}
	return accepted, review
}
