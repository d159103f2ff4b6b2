package resumeparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceWithDateLine(t *testing.T) {
	text := "Experience\n" +
		"Senior Engineer at Acme Corp\n" +
		"Jan 2020 - Present\n" +
		"- Led migration of the billing pipeline\n" +
		"- Mentored two junior engineers"

	result := Parse(text)

	require.Len(t, result.Experiences, 1)
	entry := result.Experiences[0]
	assert.Equal(t, "Senior Engineer", entry.Title)
	assert.Equal(t, "Acme Corp", entry.Company)
	assert.Equal(t, "Jan 2020 - Present", entry.Period)
	assert.Contains(t, entry.Description, "Led migration")
	assert.Contains(t, entry.Description, "Mentored two junior engineers")
	assert.NotContains(t, entry.Description, "Jan 2020")
	assert.NotEmpty(t, entry.ID)
}

func TestParseExperienceCompanyOnNextLine(t *testing.T) {
	text := "Work Experience\n" +
		"Software Developer\n" +
		"Initech Solutions\n" +
		"Mar 2018 - Dec 2019\n" +
		"Maintained reporting tools for the finance team"

	result := Parse(text)

	require.Len(t, result.Experiences, 1)
	entry := result.Experiences[0]
	assert.Equal(t, "Software Developer", entry.Title)
	assert.Equal(t, "Initech Solutions", entry.Company)
	assert.Equal(t, "Mar 2018 - Dec 2019", entry.Period)
}

func TestParseMultipleExperiences(t *testing.T) {
	text := "Experience\n" +
		"Backend Engineer at Globex\n" +
		"Jun 2021 - Present\n" +
		"- Built the order ingestion service\n" +
		"\n" +
		"Junior Developer at Initrode\n" +
		"Sep 2019 - May 2021\n" +
		"- Fixed bugs in the legacy CRM"

	result := Parse(text)

	require.Len(t, result.Experiences, 2)
	assert.Equal(t, "Backend Engineer", result.Experiences[0].Title)
	assert.Equal(t, "Globex", result.Experiences[0].Company)
	assert.Equal(t, "Junior Developer", result.Experiences[1].Title)
	assert.Equal(t, "Initrode", result.Experiences[1].Company)
}

func TestParseProjectTechnologiesFromWholeBlock(t *testing.T) {
	text := "Projects\n" +
		"Built a CLI tool for data processing using Python and Go"

	result := Parse(text)

	require.Len(t, result.Projects, 1)
	project := result.Projects[0]
	assert.Contains(t, project.Technologies, "Python")
	assert.Contains(t, project.Technologies, "Go")
	assert.Less(t,
		strings.Index(project.Technologies, "Python"),
		strings.Index(project.Technologies, "Go"),
		"technologies keep order of first appearance")
}

func TestParseProjectNameTruncation(t *testing.T) {
	longName := strings.Repeat("inventory ", 15) + "dashboard"
	text := "Projects\n" + longName + " - built a dashboard for tracking stock"

	result := Parse(text)

	require.Len(t, result.Projects, 1)
	name := result.Projects[0].Name
	assert.LessOrEqual(t, len([]rune(name)), 100)
	assert.True(t, strings.HasSuffix(name, "..."))
}

func TestParseProjectBulletDescription(t *testing.T) {
	text := "Projects\n" +
		"Weather Station - hobby hardware project\n" +
		"* Collected sensor readings over MQTT\n" +
		"• Rendered charts with React"

	result := Parse(text)

	require.Len(t, result.Projects, 1)
	project := result.Projects[0]
	assert.Equal(t, "Weather Station", project.Name)
	for _, line := range strings.Split(project.Description, "\n") {
		assert.True(t, strings.HasPrefix(line, "• "), "bullet lines are normalized: %q", line)
	}
}

func TestParseSkillsSection(t *testing.T) {
	text := "Skills\n" +
		"Python, TypeScript, React, PostgreSQL"

	result := Parse(text)

	names := make([]string, 0, len(result.Frameworks))
	for _, fw := range result.Frameworks {
		assert.Equal(t, "Intermediate", fw.Proficiency)
		assert.NotEmpty(t, fw.ID)
		names = append(names, fw.Name)
	}
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "TypeScript")
	assert.Contains(t, names, "React")
	assert.Contains(t, names, "PostgreSQL")
}

func TestParseFallsBackToGeneralSection(t *testing.T) {
	text := "Built a CLI tool for data processing using Python and Go"

	result := Parse(text)

	require.Len(t, result.Projects, 1)
	assert.Contains(t, result.Projects[0].Technologies, "Python")
}

func TestParseEmptyInput(t *testing.T) {
	result := Parse("")

	assert.NotNil(t, result.Experiences)
	assert.NotNil(t, result.Projects)
	assert.NotNil(t, result.Frameworks)
	assert.Empty(t, result.Experiences)
	assert.Empty(t, result.Projects)
	assert.Empty(t, result.Frameworks)
}

func TestParseIsDeterministicExceptIDs(t *testing.T) {
	text := "Experience\n" +
		"Platform Engineer at Hooli\n" +
		"Feb 2022 - Present\n" +
		"- Ran the Kubernetes fleet\n" +
		"\n" +
		"Projects\n" +
		"Chess Engine - built a minimax engine in Rust\n" +
		"\n" +
		"Skills\n" +
		"Go, Rust, Docker"

	first := Parse(text)
	second := Parse(text)

	stripIDs := func(r Result) Result {
		for i := range r.Experiences {
			r.Experiences[i].ID = ""
		}
		for i := range r.Projects {
			r.Projects[i].ID = ""
		}
		for i := range r.Frameworks {
			r.Frameworks[i].ID = ""
		}
		return r
	}

	assert.Equal(t, stripIDs(first), stripIDs(second))
}
