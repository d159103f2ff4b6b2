package card

// CardData is the persisted career-card payload. The shape is
// versionless: newer fields are optional so older stored payloads keep
// reading back cleanly.
type CardData struct {
	Profile         Profile          `json:"profile"`
	Theme           string           `json:"theme,omitempty"`
	Experience      []Experience     `json:"experience"`
	Projects        []Project        `json:"projects"`
	GreatestImpacts []GreatestImpact `json:"greatestImpacts"`
	StylesOfWork    []StyleOfWork    `json:"stylesOfWork"`
	Frameworks      []Framework      `json:"frameworks"`
	Pastimes        []Pastime        `json:"pastimes"`
	CodeShowcase    []CodeShowcase   `json:"codeShowcase"`
}

type Profile struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Location     string `json:"location,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
}

type Experience struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type Project struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	ProjectURL   string `json:"projectUrl,omitempty"`
}

type GreatestImpact struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Context string `json:"context"`
	Outcome string `json:"outcome,omitempty"`
}

type StyleOfWork struct {
	ID             string `json:"id,omitempty"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type Framework struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Proficiency   string `json:"proficiency"`
	ProjectsBuilt string `json:"projectsBuilt,omitempty"`
}

type Pastime struct {
	ID          string `json:"id,omitempty"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

type CodeShowcase struct {
	ID       string `json:"id,omitempty"`
	FileName string `json:"fileName"`
	Language string `json:"language"`
	Repo     string `json:"repo,omitempty"`
	URL      string `json:"url,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Code     string `json:"code"`
}
