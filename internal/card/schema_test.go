package card

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCardData() CardData {
	return CardData{
		Profile: Profile{
			Name:         "Jane Doe",
			Title:        "Backend Engineer",
			Location:     "Berlin",
			PortfolioURL: "https://janedoe.dev",
		},
		Theme: "blue",
		Experience: []Experience{
			{Title: "Backend Engineer", Company: "Globex", Period: "2021 - Present", Description: "Order ingestion."},
		},
		Projects: []Project{
			{Name: "Chess Engine", Description: "Minimax in Rust", Technologies: "Rust"},
		},
		Frameworks: []Framework{
			{Name: "Go", Proficiency: "Expert"},
		},
		StylesOfWork: []StyleOfWork{
			{Question: "Remote or office?", SelectedAnswer: "Remote"},
		},
	}
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	data := validCardData()
	assert.NoError(t, data.Validate())
}

func TestValidateAcceptsEmptyPayload(t *testing.T) {
	data := CardData{}
	assert.NoError(t, data.Validate())
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	data := validCardData()
	data.Theme = "neon"

	err := data.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
}

func TestValidateEntryCaps(t *testing.T) {
	data := validCardData()
	data.Experience = make([]Experience, maxExperienceEntries)
	assert.NoError(t, data.Validate(), "exactly at the cap is allowed")

	data.Experience = make([]Experience, maxExperienceEntries+1)
	err := data.Validate()
	require.Error(t, err)
	assert.Equal(t, "Maximum 20 experience entries allowed", err.Error())
}

func TestValidateRejectsLongStrings(t *testing.T) {
	data := validCardData()
	data.Profile.Name = strings.Repeat("x", maxShortString+1)

	err := data.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile.name")
}

func TestValidateRejectsBadProficiency(t *testing.T) {
	data := validCardData()
	data.Frameworks = []Framework{{Name: "Go", Proficiency: "Wizard"}}

	err := data.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "proficiency")
}

func TestValidateRejectsRelativeURL(t *testing.T) {
	data := validCardData()
	data.Profile.ImageURL = "/images/me.png"

	err := data.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "imageUrl")
}

func TestValidateRejectsOversizedCode(t *testing.T) {
	data := validCardData()
	data.CodeShowcase = []CodeShowcase{{
		FileName: "main.go",
		Language: "go",
		Code:     strings.Repeat("x", maxCodeString+1),
	}}

	err := data.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code snippet too long")
}

func TestValidateReturnsFirstViolation(t *testing.T) {
	data := validCardData()
	data.Profile.Title = strings.Repeat("t", maxShortString+1)
	data.Theme = "neon"

	err := data.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile.title")
}

func TestCardDataRoundTripPreservesOlderPayloads(t *testing.T) {
	// A stored payload missing newer optional fields must read back
	// without error and re-marshal cleanly.
	stored := `{"profile":{"name":"Jane Doe","title":"Engineer"},"experience":[],"projects":[],"greatestImpacts":[],"stylesOfWork":[],"frameworks":[],"pastimes":[],"codeShowcase":[]}`

	var data CardData
	require.NoError(t, json.Unmarshal([]byte(stored), &data))
	assert.NoError(t, data.Validate())

	out, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(out))
}
