package ai

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"google.golang.org/genai"

	"careercard/internal/auth"
	"careercard/internal/card"
	"careercard/internal/httputil"
	"careercard/internal/logging"
	"careercard/internal/ratelimit"
	"careercard/internal/resumeparser"
)

const maxResumeTextLen = 100000

const (
	parseResumePrompt = "You extract structured data for a career card. Always respond with valid JSON containing profile, experience, frameworks, projects, codeShowcase, pastimes, stylesOfWork, and greatestImpacts."

	parseExperiencePrompt = "You extract work experience and project entries from resumes. Always return JSON with experiences and projects arrays."

	parsePortfolioPrompt = "You analyze developer portfolios and return structured data with profile, projects, and frameworks."

	scoreCardPrompt = "You are an interviewing assistant that scores how well a career card fits a company and role. Respond with scores between 0 and 100 and actionable feedback."
)

// Handler contains HTTP handlers for the AI-assisted import and
// scoring endpoints. All of them sit behind the auth middleware.
type Handler struct {
	gemini      *Gemini
	fetcher     *Fetcher
	rateLimiter *ratelimit.Limiter
	logger      *logging.Logger
}

func NewHandler(gemini *Gemini, fetcher *Fetcher, rateLimiter *ratelimit.Limiter, logger *logging.Logger) *Handler {
	return &Handler{
		gemini:      gemini,
		fetcher:     fetcher,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// ParseResumeRequest carries resume text or a base64 data-URL image;
// exactly one must be set.
type ParseResumeRequest struct {
	ResumeText string `json:"resumeText"`
	ImageData  string `json:"imageData"`
}

// ParseResumeExperienceRequest carries resume text for the narrower
// experiences/projects extraction.
type ParseResumeExperienceRequest struct {
	ResumeText string `json:"resumeText"`
}

// ExtractResumeTextRequest carries a base64-encoded resume file.
type ExtractResumeTextRequest struct {
	FileData string `json:"fileData"`
	MimeType string `json:"mimeType"`
}

// ExtractResumeTextResponse carries the extracted plain text.
type ExtractResumeTextResponse struct {
	Text string `json:"text"`
}

// ParsePortfolioRequest carries the portfolio URL to analyze.
type ParsePortfolioRequest struct {
	PortfolioURL string `json:"portfolioUrl"`
}

// ParsePortfolioResponse wraps the model summary and sampled code files.
type ParsePortfolioResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	CodeFiles []CodeFile      `json:"codeFiles"`
}

// ScoreCareerCardRequest carries a card payload plus the company and
// role it should be scored against.
type ScoreCareerCardRequest struct {
	CareerCardData     card.CardData `json:"careerCardData"`
	CompanyDescription string        `json:"companyDescription"`
	RoleDescription    string        `json:"roleDescription"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

var dataURLRegex = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ParseResume parses a full resume into a career card payload
// @Summary      Parse a resume into card fields
// @Description  Send resume text or a card image (data URL); the model returns the structured card JSON.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body ParseResumeRequest true "Resume text or image data"
// @Success      200 {object} map[string]any
// @Failure      400 {object} ErrorResponse "Neither or both inputs provided"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Failure      500 {object} ErrorResponse "Upstream AI failure"
// @Router       /api/ai/parse-resume [post]
func (h *Handler) ParseResume(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByUser(w, r) {
		return
	}

	var req ParseResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if (req.ResumeText == "") == (req.ImageData == "") {
		httputil.RespondErrorWithCode(w, "Provide resume text or an image to parse", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}
	if len(req.ResumeText) > maxResumeTextLen {
		httputil.RespondErrorWithCode(w, "Resume text is too long", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	var parts []*genai.Part
	if req.ImageData != "" {
		imagePart, err := inlineImagePart(req.ImageData)
		if err != nil {
			httputil.RespondErrorWithCode(w, "Invalid image data format", httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		parts = []*genai.Part{
			genai.NewPartFromText("Extract all visible information from this career card image and return the structured JSON described in the instructions."),
			imagePart,
		}
	} else {
		parts = []*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("Resume text:\n%s\n\nReturn structured JSON with profile, experience, frameworks, projects, codeShowcase, pastimes, stylesOfWork, greatestImpacts.", req.ResumeText)),
		}
	}

	result, err := h.gemini.GenerateJSON(r.Context(), parseResumePrompt, parts)
	if err != nil {
		h.respondUpstreamError(w, logger, "resume parsing failed", err)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// ParseResumeExperience extracts experience and project entries
// @Summary      Extract experiences and projects from resume text
// @Description  Uses the model when configured; otherwise, or when the model fails, falls back to the local heuristic parser.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body ParseResumeExperienceRequest true "Resume text"
// @Success      200 {object} map[string]any
// @Failure      400 {object} ErrorResponse "Resume text missing or too long"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Router       /api/ai/parse-resume-experience [post]
func (h *Handler) ParseResumeExperience(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByUser(w, r) {
		return
	}

	var req ParseResumeExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if len(req.ResumeText) < 20 {
		httputil.RespondErrorWithCode(w, "Resume text is required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}
	if len(req.ResumeText) > maxResumeTextLen {
		httputil.RespondErrorWithCode(w, "Resume text is too long", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	if h.gemini.Configured() {
		parts := []*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("Extract structured work experience entries AND project entries from this resume text. Resume:\n%s", req.ResumeText)),
		}
		result, err := h.gemini.GenerateJSON(r.Context(), parseExperiencePrompt, parts)
		if err == nil {
			httputil.RespondJSON(w, result, http.StatusOK)
			return
		}
		logger.Warn("model extraction failed, using heuristic parser", "error", err.Error())
	}

	httputil.RespondJSON(w, resumeparser.Parse(req.ResumeText), http.StatusOK)
}

// ExtractResumeText extracts plain text from an uploaded resume file
// @Summary      Extract text from a resume file
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body ExtractResumeTextRequest true "Base64 file data and MIME type"
// @Success      200 {object} ExtractResumeTextResponse
// @Failure      400 {object} ErrorResponse "Unsupported file type or undecodable data"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Router       /api/ai/extract-resume-text [post]
func (h *Handler) ExtractResumeText(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByUser(w, r) {
		return
	}

	var req ExtractResumeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if req.FileData == "" {
		httputil.RespondErrorWithCode(w, "File data is required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		httputil.RespondErrorWithCode(w, "Invalid file data encoding", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	text, err := ExtractText(req.MimeType, data)
	if err != nil {
		logger.Warn("resume text extraction failed", "mime_type", req.MimeType, "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	httputil.RespondJSON(w, ExtractResumeTextResponse{Text: text}, http.StatusOK)
}

// ParsePortfolio summarizes a portfolio site, sampling GitHub code
// @Summary      Parse a portfolio URL
// @Description  Fetches the page (and GitHub code samples for GitHub profiles) and summarizes it with the model.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body ParsePortfolioRequest true "Portfolio URL"
// @Success      200 {object} ParsePortfolioResponse
// @Failure      400 {object} ErrorResponse "Invalid URL"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Failure      500 {object} ErrorResponse "Portfolio fetch or upstream AI failure"
// @Router       /api/ai/parse-portfolio [post]
func (h *Handler) ParsePortfolio(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByUser(w, r) {
		return
	}

	var req ParsePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if !isValidHTTPURL(req.PortfolioURL) {
		httputil.RespondErrorWithCode(w, "Valid portfolio URL is required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	codeFiles := make([]CodeFile, 0)
	if username := GitHubUsername(req.PortfolioURL); username != "" {
		codeFiles = h.fetcher.GitHubCodeSamples(r.Context(), username)
	}

	pageText, err := h.fetcher.PageText(r.Context(), req.PortfolioURL)
	if err != nil {
		h.respondUpstreamError(w, logger, "portfolio fetch failed", err)
		return
	}

	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf("Portfolio URL: %s\n\nContent:\n%s\n\nSummarize into structured JSON containing profile highlights, notable projects, and frameworks/technologies.", req.PortfolioURL, pageText)),
	}
	result, err := h.gemini.GenerateJSON(r.Context(), parsePortfolioPrompt, parts)
	if err != nil {
		h.respondUpstreamError(w, logger, "portfolio analysis failed", err)
		return
	}

	httputil.RespondJSON(w, ParsePortfolioResponse{
		Success:   true,
		Data:      result,
		CodeFiles: codeFiles,
	}, http.StatusOK)
}

// ScoreCareerCard scores a card against a company and role
// @Summary      Score a career card
// @Description  Validates the card payload, then asks the model for fit scores and feedback.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body ScoreCareerCardRequest true "Card payload and descriptions"
// @Success      200 {object} map[string]any
// @Failure      400 {object} ErrorResponse "Invalid card payload or missing descriptions"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Failure      500 {object} ErrorResponse "Upstream AI failure"
// @Router       /api/ai/score-career-card [post]
func (h *Handler) ScoreCareerCard(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByUser(w, r) {
		return
	}

	var req ScoreCareerCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := req.CareerCardData.Validate(); err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}
	if len(req.CompanyDescription) < 10 {
		httputil.RespondErrorWithCode(w, "Company description is required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}
	if len(req.RoleDescription) < 10 {
		httputil.RespondErrorWithCode(w, "Role description is required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	cardJSON, err := json.Marshal(req.CareerCardData)
	if err != nil {
		logger.Error("failed to marshal card payload", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to score card", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf("Company description: %s\nRole description: %s\nCareer card data: %s", req.CompanyDescription, req.RoleDescription, cardJSON)),
	}
	result, err := h.gemini.GenerateJSON(r.Context(), scoreCardPrompt, parts)
	if err != nil {
		h.respondUpstreamError(w, logger, "card scoring failed", err)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// limitByUser applies the fixed-window limiter keyed by user id;
// returns true when the request was rejected.
func (h *Handler) limitByUser(w http.ResponseWriter, r *http.Request) bool {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return true
	}

	clientID := currentUser.ID.String()
	exceeded, err := h.rateLimiter.Check(r.Context(), clientID, "ai")
	if err != nil {
		logger.Error("failed to check rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("rate limit exceeded", "user_id", clientID, "purpose", "ai")
		httputil.RespondErrorWithCode(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}

	if err := h.rateLimiter.Record(r.Context(), clientID, "ai"); err != nil {
		logger.Error("failed to record request", "error", err.Error())
	}

	return false
}

// respondUpstreamError maps any model/fetch failure to a 500 with the
// upstream detail embedded in the message.
func (h *Handler) respondUpstreamError(w http.ResponseWriter, logger *logging.Logger, context string, err error) {
	logger.Error(context, "error", err.Error())

	if errors.Is(err, ErrNotConfigured) {
		httputil.RespondErrorWithCode(w, "AI parsing is not configured", httputil.CodeUpstreamError, http.StatusInternalServerError)
		return
	}

	httputil.RespondErrorWithCode(w, fmt.Sprintf("%s: %v", context, err), httputil.CodeUpstreamError, http.StatusInternalServerError)
}

func inlineImagePart(dataURL string) (*genai.Part, error) {
	match := dataURLRegex.FindStringSubmatch(dataURL)
	if match == nil {
		return nil, errors.New("invalid image data format")
	}

	decoded, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return nil, fmt.Errorf("invalid image encoding: %w", err)
	}

	return genai.NewPartFromBytes(decoded, match[1]), nil
}

func isValidHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
