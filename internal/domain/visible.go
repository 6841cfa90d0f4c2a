package domain

// VisibleStartUps drops archived start-ups unless includeArchived is set.
// Visitors see only live records; administrators see everything.
func VisibleStartUps(list []StartUp, includeArchived bool) []StartUp {
	if includeArchived {
		return list
	}
	out := make([]StartUp, 0, len(list))
	for _, su := range list {
		if !su.Archived {
			out = append(out, su)
		}
	}
	return out
}

// VisibleInternships drops archived internships unless includeArchived is set.
func VisibleInternships(list []Internship, includeArchived bool) []Internship {
	if includeArchived {
		return list
	}
	out := make([]Internship, 0, len(list))
	for _, in := range list {
		if !in.Archived {
			out = append(out, in)
		}
	}
	return out
}
