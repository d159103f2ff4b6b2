package resumeparser

import "regexp"

// sectionKey tags which part of the resume a line belongs to.
type sectionKey string

const (
	sectionGeneral    sectionKey = "general"
	sectionExperience sectionKey = "experience"
	sectionProjects   sectionKey = "projects"
	sectionSkills     sectionKey = "skills"
)

// sectionPatterns switch the current section while scanning lines.
// Checked in order; general has no patterns and is the initial tag.
var sectionPatterns = []struct {
	key      sectionKey
	patterns []*regexp.Regexp
}{
	{sectionExperience, []*regexp.Regexp{
		regexp.MustCompile(`(?i)experience`),
		regexp.MustCompile(`(?i)work experience`),
		regexp.MustCompile(`(?i)professional experience`),
		regexp.MustCompile(`(?i)employment history`),
	}},
	{sectionProjects, []*regexp.Regexp{
		regexp.MustCompile(`(?i)projects`),
		regexp.MustCompile(`(?i)project experience`),
		regexp.MustCompile(`(?i)personal projects`),
		regexp.MustCompile(`(?i)selected projects`),
	}},
	{sectionSkills, []*regexp.Regexp{
		regexp.MustCompile(`(?i)skills`),
		regexp.MustCompile(`(?i)technical skills`),
		regexp.MustCompile(`(?i)tech stack`),
		regexp.MustCompile(`(?i)technologies`),
	}},
}

var roleKeywords = []string{
	"engineer",
	"developer",
	"designer",
	"manager",
	"lead",
	"consultant",
	"specialist",
	"architect",
	"intern",
	"analyst",
	"president",
	"founder",
	"co-founder",
	"volunteer",
	"director",
	"chair",
	"researcher",
	"instructor",
	"teacher",
	"assistant",
}

var projectKeywords = []string{
	"project",
	"built",
	"developed",
	"created",
	"designed",
	"launched",
	"implemented",
	"tool",
	"platform",
	"application",
	"app",
	"system",
	"automation",
	"framework",
	"hackathon",
	"challenge",
	"ctf",
	"prototype",
}

// sectionLabels are the heading strings recognized during
// normalization and block segmentation.
var sectionLabels = []string{
	"experience",
	"work experience",
	"professional experience",
	"employment history",
	"projects",
	"project experience",
	"personal projects",
	"selected projects",
	"skills",
	"technical skills",
	"tech stack",
	"technologies",
	"education",
	"certifications",
	"leadership",
	"community",
	"summary",
}

// techVocabulary is the fixed list of language/framework/tool names
// matched (case-insensitively, as substrings) in descriptions and the
// skills section.
var techVocabulary = []string{
	"JavaScript",
	"TypeScript",
	"React",
	"Next.js",
	"Node.js",
	"Python",
	"Django",
	"Flask",
	"FastAPI",
	"Go",
	"Rust",
	"Java",
	"Spring",
	"Kotlin",
	"Swift",
	"C++",
	"C#",
	".NET",
	"PHP",
	"Laravel",
	"Ruby",
	"Rails",
	"AWS",
	"Azure",
	"GCP",
	"Kubernetes",
	"Docker",
	"PostgreSQL",
	"MySQL",
	"MongoDB",
	"Redis",
	"GraphQL",
	"REST",
	"Tailwind CSS",
	"Sass",
	"HTML",
	"CSS",
	"SQL",
	"NoSQL",
	"Firebase",
	"Unity",
	"TensorFlow",
	"PyTorch",
	"Terraform",
}

const monthPattern = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

// dateRangeRegex matches "Jan 2020 - Present", "2019 to 2021",
// "Q2 2022 – Current" and similar period spans.
var dateRangeRegex = regexp.MustCompile(
	`(?i)\b(` + monthPattern + `\.?\s+\d{4}|Q[1-4]\s+\d{4}|\d{4})\s*(?:-|–|to|through|present|current)\s*(Present|Current|` + monthPattern + `\.?\s+\d{4}|\d{4})`,
)

var (
	leadershipRegex   = regexp.MustCompile(`(?i)\b(leadership|club|president|chair|captain|volunteer|mentor|head|director)\b`)
	competitionRegex  = regexp.MustCompile(`(?i)\b(ctf|hackathon|challenge|competition)\b`)
	bulletRegex       = regexp.MustCompile(`^[-•*]`)
	companyLineRegex  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 &,.]{2,}$`)
	titleCompanyRegex = regexp.MustCompile(`(?i)(.+?)(?:\s+at|\s+@|\s+-|\s+\|)\s+(.+)`)
	projectNameDelim  = regexp.MustCompile(`(.+?)(?:\s+[–-]\s+|\s*:\s+)`)
	bulletGlyphRegex  = regexp.MustCompile("[•‣●○◉■]")
	whitespaceRegex   = regexp.MustCompile(`\s+`)
)

// headerSeparatorRegex marks project-style header lines holding a
// dash/colon separator (hyphen or em dash, mirroring the client).
var headerSeparatorRegex = regexp.MustCompile(`[-—:]`)
