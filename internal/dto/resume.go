package dto

// UploadResumeResponse mirrors the upload contract: either Text or Error is set.
type UploadResumeResponse struct {
	Text  string `json:"text,omitempty" example:"Jane Doe Software Engineer ..."`
	Error string `json:"error,omitempty" example:"No file provided"`
}

type ATSScoreRequest struct {
	ResumeText string `json:"resume_text" example:"Experienced engineer with Go and SQL..."`
	JobDesc    string `json:"job_desc" example:"We are hiring a backend engineer..."`
}

type ATSScoreResponse struct {
	Score           int      `json:"score" example:"72"`
	PresentKeywords []string `json:"present_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}
