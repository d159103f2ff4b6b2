package card

import (
	"fmt"
	"net/url"
)

// Structural limits shared with the web client. A payload must pass
// Validate before it touches storage; the first violation message is
// what the API returns as a 400.
const (
	maxShortString  = 100
	maxMediumString = 500
	maxLongString   = 2000
	maxURLString    = 500
	maxCodeString   = 50000

	maxExperienceEntries   = 20
	maxProjectEntries      = 20
	maxImpactEntries       = 10
	maxStyleOfWorkEntries  = 20
	maxFrameworkEntries    = 30
	maxPastimeEntries      = 10
	maxCodeShowcaseEntries = 10
)

var themes = map[string]bool{
	"blue":   true,
	"purple": true,
	"green":  true,
	"orange": true,
	"pink":   true,
	"slate":  true,
}

var proficiencies = map[string]bool{
	"Beginner":     true,
	"Intermediate": true,
	"Advanced":     true,
	"Expert":       true,
}

// ValidationError carries the first schema violation found.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func violation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks the payload against the career-card schema and
// returns the first violation found, or nil.
func (d *CardData) Validate() error {
	if err := d.Profile.validate(); err != nil {
		return err
	}

	if d.Theme != "" && !themes[d.Theme] {
		return violation("Invalid theme %q", d.Theme)
	}

	if len(d.Experience) > maxExperienceEntries {
		return violation("Maximum %d experience entries allowed", maxExperienceEntries)
	}
	for i := range d.Experience {
		if err := d.Experience[i].validate(); err != nil {
			return err
		}
	}

	if len(d.Projects) > maxProjectEntries {
		return violation("Maximum %d projects allowed", maxProjectEntries)
	}
	for i := range d.Projects {
		if err := d.Projects[i].validate(); err != nil {
			return err
		}
	}

	if len(d.GreatestImpacts) > maxImpactEntries {
		return violation("Maximum %d impacts allowed", maxImpactEntries)
	}
	for i := range d.GreatestImpacts {
		if err := d.GreatestImpacts[i].validate(); err != nil {
			return err
		}
	}

	if len(d.StylesOfWork) > maxStyleOfWorkEntries {
		return violation("Maximum %d work styles allowed", maxStyleOfWorkEntries)
	}
	for i := range d.StylesOfWork {
		if err := d.StylesOfWork[i].validate(); err != nil {
			return err
		}
	}

	if len(d.Frameworks) > maxFrameworkEntries {
		return violation("Maximum %d frameworks allowed", maxFrameworkEntries)
	}
	for i := range d.Frameworks {
		if err := d.Frameworks[i].validate(); err != nil {
			return err
		}
	}

	if len(d.Pastimes) > maxPastimeEntries {
		return violation("Maximum %d pastimes allowed", maxPastimeEntries)
	}
	for i := range d.Pastimes {
		if err := d.Pastimes[i].validate(); err != nil {
			return err
		}
	}

	if len(d.CodeShowcase) > maxCodeShowcaseEntries {
		return violation("Maximum %d code snippets allowed", maxCodeShowcaseEntries)
	}
	for i := range d.CodeShowcase {
		if err := d.CodeShowcase[i].validate(); err != nil {
			return err
		}
	}

	return nil
}

func (p *Profile) validate() error {
	if err := shortString("profile.name", p.Name); err != nil {
		return err
	}
	if err := shortString("profile.title", p.Title); err != nil {
		return err
	}
	if err := shortString("profile.location", p.Location); err != nil {
		return err
	}
	if err := urlString("profile.imageUrl", p.ImageURL); err != nil {
		return err
	}
	return urlString("profile.portfolioUrl", p.PortfolioURL)
}

func (e *Experience) validate() error {
	if err := shortString("experience.title", e.Title); err != nil {
		return err
	}
	if err := shortString("experience.company", e.Company); err != nil {
		return err
	}
	if err := shortString("experience.period", e.Period); err != nil {
		return err
	}
	return longString("experience.description", e.Description)
}

func (p *Project) validate() error {
	if err := shortString("project.name", p.Name); err != nil {
		return err
	}
	if err := longString("project.description", p.Description); err != nil {
		return err
	}
	if err := mediumString("project.technologies", p.Technologies); err != nil {
		return err
	}
	return urlString("project.projectUrl", p.ProjectURL)
}

func (g *GreatestImpact) validate() error {
	if err := shortString("impact.title", g.Title); err != nil {
		return err
	}
	if err := longString("impact.context", g.Context); err != nil {
		return err
	}
	return longString("impact.outcome", g.Outcome)
}

func (s *StyleOfWork) validate() error {
	if err := mediumString("styleOfWork.question", s.Question); err != nil {
		return err
	}
	return mediumString("styleOfWork.selectedAnswer", s.SelectedAnswer)
}

func (f *Framework) validate() error {
	if err := shortString("framework.name", f.Name); err != nil {
		return err
	}
	if !proficiencies[f.Proficiency] {
		return violation("Invalid proficiency %q", f.Proficiency)
	}
	return shortString("framework.projectsBuilt", f.ProjectsBuilt)
}

func (p *Pastime) validate() error {
	if err := shortString("pastime.activity", p.Activity); err != nil {
		return err
	}
	return longString("pastime.description", p.Description)
}

func (c *CodeShowcase) validate() error {
	if err := shortString("codeShowcase.fileName", c.FileName); err != nil {
		return err
	}
	if err := shortString("codeShowcase.language", c.Language); err != nil {
		return err
	}
	if err := shortString("codeShowcase.repo", c.Repo); err != nil {
		return err
	}
	if err := urlString("codeShowcase.url", c.URL); err != nil {
		return err
	}
	if err := mediumString("codeShowcase.caption", c.Caption); err != nil {
		return err
	}
	if len(c.Code) > maxCodeString {
		return violation("Code snippet too long (max 50KB)")
	}
	return nil
}

func shortString(field, value string) error {
	if len(value) > maxShortString {
		return violation("%s: maximum %d characters allowed", field, maxShortString)
	}
	return nil
}

func mediumString(field, value string) error {
	if len(value) > maxMediumString {
		return violation("%s: maximum %d characters allowed", field, maxMediumString)
	}
	return nil
}

func longString(field, value string) error {
	if len(value) > maxLongString {
		return violation("%s: maximum %d characters allowed", field, maxLongString)
	}
	return nil
}

// urlString accepts the empty string; anything else must be an
// absolute URL no longer than the cap.
func urlString(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > maxURLString {
		return violation("%s: URL too long", field)
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return violation("%s: invalid URL format", field)
	}
	return nil
}
