package models

// GenerateRequest asks for a batch of questions at a single mark allocation.
// Format is 'internal' or 'semester'.
type GenerateRequest struct {
	Subject      string `json:"subject" binding:"required"`
	Marks        int    `json:"marks" binding:"required"`
	Count        int    `json:"count" binding:"required"`
	Format       string `json:"format" binding:"required"`
	CustomPrompt string `json:"custom_prompt"`
}

// GenerateFullRequest asks for a complete internal exam paper.
type GenerateFullRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// QuizRequest asks for a quiz. QuizType is 'mcq' or 'fill_blanks'.
type QuizRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Marks    int    `json:"marks" binding:"required"`
	QuizType string `json:"quiz_type" binding:"required"`
}

// ChatRequest is a free-form request answered with subject context.
type ChatRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
