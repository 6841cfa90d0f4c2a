package domain

import "github.com/google/uuid"

// MergeResult is the output of Merge.
// Items preserves the order of the input internships. Dropped holds the ids of
// internships whose start-up was not in the input, in input order.
type MergeResult struct {
	Items   []MergedInternship
	Dropped []uuid.UUID
}

// Merge joins every internship with its start-up by StartUpID.
// Internships referencing an unknown start-up are left out of Items and
// reported in Dropped; no error is returned for them.
func Merge(startUps []StartUp, internships []Internship) MergeResult {
	byID := make(map[uuid.UUID]StartUp, len(startUps))
	for _, s := range startUps {
		byID[s.ID] = s
	}

	res := MergeResult{Items: make([]MergedInternship, 0, len(internships))}
	for _, in := range internships {
		s, ok := byID[in.StartUpID]
		if !ok {
			res.Dropped = append(res.Dropped, in.ID)
			continue
		}
		res.Items = append(res.Items, MergedInternship{
			Internship:  in,
			StartUpName: s.Name,
			StartUpLogo: s.Logo,
			StartUpURL:  s.URL,
		})
	}
	return res
}

// FilterByCompany returns the items owned by startUpID, preserving order.
// Always returns a non-nil slice.
func FilterByCompany(items []MergedInternship, startUpID uuid.UUID) []MergedInternship {
	out := []MergedInternship{}
	for _, it := range items {
		if it.StartUpID == startUpID {
			out = append(out, it)
		}
	}
	return out
}
