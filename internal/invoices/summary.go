package invoices

// Spend aggregates archived invoices for one bucket.
type Spend struct {
	Invoices int                `json:"invoices"`
	Totals   map[string]float64 `json:"totals"`
}

// SummarizeBySender aggregates spend per normalized issuer.
func SummarizeBySender(records []Record) map[string]Spend {
	return summarize(records, func(r Record) string { return r.Sender })
}

// SummarizeByMonth aggregates spend per YYYY-MM bucket.
func SummarizeByMonth(records []Record) map[string]Spend {
	return summarize(records, func(r Record) string { return r.Month })
}

func summarize(records []Record, key func(Record) string) map[string]Spend {
	out := make(map[string]Spend)
	for _, r := range records {
		k := key(r)
		s, ok := out[k]
		if !ok {
			s = Spend{Totals: make(map[string]float64)}
		}
		s.Invoices++
		if r.Fields.Amount != nil {
			currency := "unknown"
			if r.Fields.Currency != nil && *r.Fields.Currency != "" {
				currency = *r.Fields.Currency
			}
			s.Totals[currency] += *r.Fields.Amount
		}
		out[k] = s
	}
	return out
}
