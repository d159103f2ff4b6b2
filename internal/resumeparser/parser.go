// Package resumeparser turns raw resume text into structured
// experience, project and skill entries using keyword and regex
// heuristics. It is deterministic, makes no external calls, and never
// fails: unparseable input degrades to empty results.
package resumeparser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Experience is one extracted work-experience entry.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Project is one extracted project entry.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
}

// Framework is one extracted skill/technology entry.
type Framework struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Result is the full decomposition of a resume.
type Result struct {
	Experiences []Experience `json:"experiences"`
	Projects    []Project    `json:"projects"`
	Frameworks  []Framework  `json:"frameworks"`
}

// defaultProficiency is assigned to every skill found by the keyword
// scan; the user adjusts it in the editor.
const defaultProficiency = "Intermediate"

const (
	maxProjectNameLen        = 100
	maxProjectDescriptionLen = 1990
)

// Parse analyzes resume text and extracts experiences, projects and
// skills. Section-scoped extraction runs first; when a section yields
// nothing, the same pass reruns over the untagged (general) lines.
func Parse(resumeText string) Result {
	sections := splitIntoSections(normalizeText(resumeText))

	experiences := parseExperienceBlocks(sections[sectionExperience])
	if len(experiences) == 0 {
		experiences = parseExperienceBlocks(sections[sectionGeneral])
	}

	projects := parseProjectBlocks(sections[sectionProjects])
	if len(projects) == 0 {
		projects = parseProjectBlocks(sections[sectionGeneral])
	}

	frameworks := parseFrameworks(sections[sectionSkills])
	if len(frameworks) == 0 {
		frameworks = parseFrameworks(sections[sectionGeneral])
	}

	return Result{
		Experiences: experiences,
		Projects:    projects,
		Frameworks:  frameworks,
	}
}

var (
	tripleNewlineRegex      = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRegex      = regexp.MustCompile(`[ \t]+\n`)
	leadingSpaceRegex       = regexp.MustCompile(`\n[ \t]+`)
	sectionLabelLineRegexps = buildSectionLabelLineRegexps()
)

func buildSectionLabelLineRegexps() []*regexp.Regexp {
	regexps := make([]*regexp.Regexp, 0, len(sectionLabels))
	for _, label := range sectionLabels {
		regexps = append(regexps, regexp.MustCompile(
			`(?mi)^[ \t]*`+regexp.QuoteMeta(label)+`[ \t]*:?[ \t]*$`,
		))
	}
	return regexps
}

// normalizeText unifies line endings, canonicalizes bullet glyphs to
// "\n• " and pads recognized section-heading lines with blank lines so
// they reliably start a new block.
func normalizeText(text string) string {
	normalized := strings.ReplaceAll(text, "\r", "\n")
	normalized = bulletGlyphRegex.ReplaceAllString(normalized, "\n• ")

	for _, labelLine := range sectionLabelLineRegexps {
		normalized = labelLine.ReplaceAllStringFunc(normalized, func(match string) string {
			return "\n\n" + strings.TrimSpace(match) + "\n"
		})
	}

	normalized = tripleNewlineRegex.ReplaceAllString(normalized, "\n\n")
	normalized = trailingSpaceRegex.ReplaceAllString(normalized, "\n")
	normalized = leadingSpaceRegex.ReplaceAllString(normalized, "\n")

	return strings.TrimSpace(normalized)
}

// splitIntoSections scans lines top to bottom, switching the current
// section tag when a line matches a section pattern. The heading line
// itself is consumed. Blank lines stay in the section to preserve
// block boundaries.
func splitIntoSections(text string) map[sectionKey][]string {
	sections := map[sectionKey][]string{
		sectionGeneral:    {},
		sectionExperience: {},
		sectionProjects:   {},
		sectionSkills:     {},
	}

	current := sectionGeneral

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			sections[current] = append(sections[current], "")
			continue
		}

		normalized := strings.ToLower(strings.TrimSuffix(trimmed, ":"))

		matched := sectionKey("")
		for _, group := range sectionPatterns {
			for _, pattern := range group.patterns {
				if pattern.MatchString(normalized) {
					matched = group.key
					break
				}
			}
			if matched != "" {
				break
			}
		}

		if matched != "" && matched != current {
			current = matched
			continue
		}

		sections[current] = append(sections[current], trimmed)
	}

	return sections
}

func parseExperienceBlocks(lines []string) []Experience {
	experiences := make([]Experience, 0)

	for _, block := range segmentEntryBlocks(lines, sectionExperience) {
		if !looksLikeExperience(block) {
			continue
		}
		if entry, ok := buildExperience(block); ok {
			experiences = append(experiences, entry)
		}
	}

	return experiences
}

func parseProjectBlocks(lines []string) []Project {
	projects := make([]Project, 0)

	for _, block := range segmentEntryBlocks(lines, sectionProjects) {
		if !looksLikeProject(block) {
			continue
		}
		if entry, ok := buildProject(block); ok {
			projects = append(projects, entry)
		}
	}

	return projects
}

// parseFrameworks scans lines against the technology vocabulary; every
// hit becomes a skill entry with the default proficiency.
func parseFrameworks(lines []string) []Framework {
	text := strings.ToLower(strings.Join(lines, " "))
	frameworks := make([]Framework, 0)

	for _, keyword := range techVocabulary {
		if strings.Contains(text, strings.ToLower(keyword)) {
			frameworks = append(frameworks, Framework{
				ID:          uuid.NewString(),
				Name:        keyword,
				Proficiency: defaultProficiency,
			})
		}
	}

	return frameworks
}

// segmentEntryBlocks groups consecutive lines into candidate entry
// blocks. Blank lines and section-heading lines flush the current
// block; a line that looks like a new entry header starts one.
func segmentEntryBlocks(lines []string, target sectionKey) []string {
	blocks := make([]string, 0)
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.TrimSpace(strings.Join(current, "\n")))
			current = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if isSectionHeading(trimmed) {
			flush()
			continue
		}

		if len(current) > 0 && isEntryHeader(trimmed, target) {
			flush()
		}

		current = append(current, trimmed)
	}

	flush()
	return blocks
}

func isSectionHeading(line string) bool {
	normalized := strings.ToLower(strings.TrimSuffix(line, ":"))
	for _, label := range sectionLabels {
		if normalized == label {
			return true
		}
	}
	return false
}

// isEntryHeader decides whether a line begins a new entry. A line that
// is nothing but a date range is a continuation: it carries the period
// for the header above it, not a new entry.
func isEntryHeader(line string, target sectionKey) bool {
	if bulletRegex.MatchString(line) {
		return false
	}

	if match := dateRangeRegex.FindString(line); match != "" {
		rest := strings.TrimSpace(strings.Replace(line, match, "", 1))
		return rest != ""
	}

	lower := strings.ToLower(line)

	if target == sectionExperience {
		for _, keyword := range roleKeywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
		return leadershipRegex.MatchString(line)
	}

	for _, keyword := range projectKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	if competitionRegex.MatchString(line) {
		return true
	}
	// Short "Name - blurb" / "Name: blurb" lines read as project headers.
	if headerSeparatorRegex.MatchString(line) && len([]rune(line)) < 140 {
		return true
	}

	return false
}

func looksLikeExperience(block string) bool {
	if dateRangeRegex.MatchString(block) {
		return true
	}
	lower := strings.ToLower(block)
	for _, keyword := range roleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func looksLikeProject(block string) bool {
	lower := strings.ToLower(block)
	for _, keyword := range projectKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func buildExperience(block string) (Experience, bool) {
	lines := splitBlockLines(block)
	if len(lines) == 0 {
		return Experience{}, false
	}

	header := lines[0]
	rest := lines[1:]

	periodMatch := dateRangeRegex.FindString(header)
	if periodMatch == "" {
		periodMatch = dateRangeRegex.FindString(block)
	}
	period := normalizeWhitespace(periodMatch)

	headerWithoutPeriod := header
	if periodMatch != "" {
		headerWithoutPeriod = normalizeWhitespace(strings.Replace(header, periodMatch, "", 1))
	}

	var nextLine string
	if len(rest) > 0 {
		nextLine = rest[0]
	}
	title, company := splitTitleCompany(headerWithoutPeriod, nextLine)

	if title == "" && company == "" && len(rest) == 0 {
		return Experience{}, false
	}

	descriptionLines := make([]string, 0, len(rest))
	for _, line := range rest {
		// The line carrying the period has already been consumed.
		if period != "" && normalizeWhitespace(line) == period {
			continue
		}
		descriptionLines = append(descriptionLines, line)
	}

	if title == "" {
		title = "Experience"
	}

	return Experience{
		ID:          uuid.NewString(),
		Title:       title,
		Company:     company,
		Period:      period,
		Description: normalizeWhitespace(strings.Join(descriptionLines, " ")),
	}, true
}

func buildProject(block string) (Project, bool) {
	lines := splitBlockLines(block)
	if len(lines) == 0 {
		return Project{}, false
	}

	name := formatProjectName(lines[0])
	description := formatProjectDescription(lines[1:])
	technologies := extractTechnologies(block)

	return Project{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Technologies: strings.Join(technologies, ", "),
	}, true
}

var leadingBulletRegex = regexp.MustCompile(`^[-•*]\s*`)

// formatProjectName cleans a header line into a display name: bullet
// stripped, truncated at the first " - "/" – "/": " delimiter,
// title-cased, hard-capped at 100 characters.
func formatProjectName(raw string) string {
	withoutBullet := strings.TrimSpace(leadingBulletRegex.ReplaceAllString(raw, ""))
	if withoutBullet == "" {
		return "Project"
	}

	base := withoutBullet
	if m := projectNameDelim.FindStringSubmatch(withoutBullet); m != nil {
		base = m[1]
	}

	formatted := titleCase(strings.TrimSpace(base))
	if runes := []rune(formatted); len(runes) > maxProjectNameLen {
		formatted = strings.TrimSpace(string(runes[:maxProjectNameLen-3])) + "..."
	}

	if formatted == "" {
		return "Project"
	}
	return formatted
}

// formatProjectDescription normalizes bullet prefixes to "• " and
// hard-caps the joined text, appending a literal "..." on truncation.
func formatProjectDescription(lines []string) string {
	formatted := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if bulletRegex.MatchString(trimmed) {
			formatted = append(formatted, "• "+leadingBulletRegex.ReplaceAllString(trimmed, ""))
		} else {
			formatted = append(formatted, trimmed)
		}
	}

	description := strings.Join(formatted, "\n")
	if runes := []rune(description); len(runes) > maxProjectDescriptionLen {
		description = strings.TrimRight(string(runes[:maxProjectDescriptionLen]), " \t\n") + "..."
	}

	return description
}

// splitTitleCompany splits a header via "<title> at|@|-|| <company>",
// falling back to a company-looking next line.
func splitTitleCompany(header, possibleCompany string) (string, string) {
	if m := titleCompanyRegex.FindStringSubmatch(header); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if possibleCompany != "" && companyLineRegex.MatchString(possibleCompany) {
		return strings.TrimSpace(header), strings.TrimSpace(possibleCompany)
	}

	return strings.TrimSpace(header), ""
}

// extractTechnologies collects vocabulary hits in order of first
// appearance, deduplicated.
func extractTechnologies(text string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		name  string
		index int
	}
	hits := make([]hit, 0)
	for _, keyword := range techVocabulary {
		if idx := strings.Index(lower, strings.ToLower(keyword)); idx >= 0 {
			hits = append(hits, hit{name: keyword, index: idx})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].index < hits[j].index })

	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.name)
	}
	return names
}

var blockLineSplitRegex = regexp.MustCompile(`\n+`)

func splitBlockLines(block string) []string {
	parts := blockLineSplitRegex.Split(block, -1)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func normalizeWhitespace(value string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(value, " "))
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	words := strings.Split(value, " ")
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
		}
	}
	return strings.Join(words, " ")
}
