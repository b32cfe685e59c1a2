package model

// ReportDocument is one bureau's parsed report: a tree of map[string]any objects,
// []any arrays and primitive leaves. The pipeline never mutates it.
type ReportDocument = any

// ReportSet holds up to one document per bureau.
type ReportSet map[Bureau]ReportDocument

// Bureaus returns the bureaus present in the set in canonical order.
func (s ReportSet) Bureaus() []Bureau {
	present := make([]Bureau, 0, len(s))
	for _, b := range AllBureaus {
		if doc, ok := s[b]; ok && doc != nil {
			present = append(present, b)
		}
	}
	return present
}
