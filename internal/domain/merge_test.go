package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkazala/work20/internal/domain"
)

func TestMerge_DropsUnmatchedInternships(t *testing.T) {
	acme := domain.StartUp{ID: uuid.New(), Name: "Acme", Logo: "L", URL: "U"}
	matched := domain.Internship{ID: uuid.New(), StartUpID: acme.ID, Name: "Intern A"}
	orphan := domain.Internship{ID: uuid.New(), StartUpID: uuid.New(), Name: "Intern B"}

	res := domain.Merge([]domain.StartUp{acme}, []domain.Internship{matched, orphan})

	require.Len(t, res.Items, 1)
	assert.Equal(t, matched.ID, res.Items[0].ID)
	assert.Equal(t, "Acme", res.Items[0].StartUpName)
	assert.Equal(t, "L", res.Items[0].StartUpLogo)
	assert.Equal(t, "U", res.Items[0].StartUpURL)
	assert.Equal(t, "Intern A", res.Items[0].Name)
	assert.Equal(t, []uuid.UUID{orphan.ID}, res.Dropped)
}

func TestMerge_PreservesInternshipOrder(t *testing.T) {
	a := domain.StartUp{ID: uuid.New(), Name: "A"}
	b := domain.StartUp{ID: uuid.New(), Name: "B"}
	internships := []domain.Internship{
		{ID: uuid.New(), StartUpID: b.ID},
		{ID: uuid.New(), StartUpID: a.ID},
		{ID: uuid.New(), StartUpID: uuid.New()},
		{ID: uuid.New(), StartUpID: b.ID},
	}

	res := domain.Merge([]domain.StartUp{a, b}, internships)

	require.Len(t, res.Items, 3)
	assert.Equal(t, internships[0].ID, res.Items[0].ID)
	assert.Equal(t, internships[1].ID, res.Items[1].ID)
	assert.Equal(t, internships[3].ID, res.Items[2].ID)
	assert.Equal(t, "B", res.Items[0].StartUpName)
	assert.Equal(t, "A", res.Items[1].StartUpName)
}

func TestMerge_EmptyInputs(t *testing.T) {
	res := domain.Merge(nil, nil)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Dropped)
}

func TestFilterByCompany(t *testing.T) {
	target := uuid.New()
	other := uuid.New()
	items := []domain.MergedInternship{
		{Internship: domain.Internship{ID: uuid.New(), StartUpID: target}},
		{Internship: domain.Internship{ID: uuid.New(), StartUpID: other}},
		{Internship: domain.Internship{ID: uuid.New(), StartUpID: target}},
	}

	got := domain.FilterByCompany(items, target)

	require.Len(t, got, 2)
	assert.Equal(t, items[0].ID, got[0].ID)
	assert.Equal(t, items[2].ID, got[1].ID)
	for _, it := range got {
		assert.Equal(t, target, it.StartUpID)
	}
}

func TestFilterByCompany_NoMatches(t *testing.T) {
	items := []domain.MergedInternship{
		{Internship: domain.Internship{ID: uuid.New(), StartUpID: uuid.New()}},
	}

	got := domain.FilterByCompany(items, uuid.New())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInternship_ShowFlags(t *testing.T) {
	in := domain.Internship{
		Salary:              "2000 €",
		SalaryActive:        false,
		Location:            "Helsinki",
		LocationActive:      true,
		RequiredExperiences: "Go",
	}

	_, ok := in.ShowSalary()
	assert.False(t, ok, "salary must be hidden when its flag is off")

	loc, ok := in.ShowLocation()
	assert.True(t, ok)
	assert.Equal(t, "Helsinki", loc)

	_, ok = in.ShowRequiredExperiences()
	assert.False(t, ok)
}
