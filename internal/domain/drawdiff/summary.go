package drawdiff

import "github.com/rdc-cli/rdc/internal/domain"

// Summarize counts rows by status, overall and per pass. Passes are listed in
// the order they first appear in rows.
func Summarize(result *domain.DrawDiffResult) domain.Summary {
	s := domain.Summary{Mode: result.Mode, ByPass: []domain.PassCounts{}}
	index := make(map[string]int)

	for _, row := range result.Rows {
		s.Counts.Add(row.Status)

		i, ok := index[row.Pass]
		if !ok {
			i = len(s.ByPass)
			index[row.Pass] = i
			s.ByPass = append(s.ByPass, domain.PassCounts{Pass: row.Pass})
		}
		s.ByPass[i].Counts.Add(row.Status)
	}
	return s
}
