package resume

import (
	"strings"
	"testing"

	"interview-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *models.Resume {
	return &models.Resume{
		Name:           "Alice Example",
		RoleName:       "Backend Engineer",
		Email:          "alice@example.test",
		Phone:          "+31 6 1234 5678",
		Address:        "Amsterdam, NL",
		LinkedIn:       "linkedin.com/in/alice",
		ProfileSummary: "**Seasoned** backend engineer.",
		Skills:         "Go, PostgreSQL,\tRedis",
		Experience: []models.ResumeExperience{
			{
				Role:             "Senior Engineer",
				Company:          "Acme",
				Location:         "Remote",
				FromDate:         "2021-01",
				ToDate:           "2024-06",
				Responsibilities: "Built the billing service.\n\n**Led** the on-call rotation.",
			},
		},
		Education: []models.ResumeEducation{
			{
				Degree:     "BSc",
				Category:   "Computer Science",
				University: "TU Delft",
				Location:   "Delft",
				FromYear:   "2013",
				ToYear:     "2017",
			},
		},
	}
}

func TestText_FullResume(t *testing.T) {
	out := Text(sampleResume())

	assert.True(t, strings.HasPrefix(out, "ALICE EXAMPLE\n"))
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "alice@example.test  +31 6 1234 5678")
	assert.Contains(t, out, "LinkedIn: linkedin.com/in/alice")

	assert.Contains(t, out, "PROFILE SUMMARY:\nSeasoned backend engineer.")
	assert.NotContains(t, out, "**")

	assert.Contains(t, out, "SKILLS:\nGo, PostgreSQL,    Redis")

	assert.Contains(t, out, "• Senior Engineer — Acme (2021-01 - 2024-06)")
	assert.Contains(t, out, "  Location: Remote")
	assert.Contains(t, out, "  - Built the billing service.")
	assert.Contains(t, out, "  - Led the on-call rotation.")

	assert.Contains(t, out, "• BSc in Computer Science — TU Delft (Delft)")
	assert.Contains(t, out, "  Years: 2013 - 2017")
}

func TestText_SparseResume(t *testing.T) {
	out := Text(&models.Resume{Name: "Bob"})

	assert.True(t, strings.HasPrefix(out, "BOB\n"))
	assert.NotContains(t, out, "PROFILE SUMMARY:")
	assert.NotContains(t, out, "SKILLS:")
	assert.NotContains(t, out, "PROFESSIONAL EXPERIENCE:")
	assert.NotContains(t, out, "EDUCATION:")
}

func TestText_Nil(t *testing.T) {
	assert.Equal(t, "", Text(nil))
}

func TestBuildPrompt(t *testing.T) {
	out := BuildPrompt("RESUME TEXT", "JOB DESCRIPTION")

	resumeIdx := strings.Index(out, "RESUME TEXT")
	jobIdx := strings.Index(out, "JOB DESCRIPTION")
	templateIdx := strings.Index(out, "interview's question")

	require.GreaterOrEqual(t, resumeIdx, 0)
	require.Greater(t, jobIdx, resumeIdx)
	require.Greater(t, templateIdx, jobIdx)

	assert.Contains(t, out, "Above is my resume.")
	assert.Contains(t, out, "Above is job description")
}
