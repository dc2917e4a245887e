package apicheck

// API paths exercised by the backend checks.
const (
	HealthPath      = "/api/v1/health"
	TextToImagePath = "/api/v1/generate/text2img"
	PromptsPath     = "/api/v1/prompts"
)

// Check names as they appear in the report.
const (
	NameHealth        = "backend health"
	NameTextToImage   = "text-to-image API"
	NameImageAccess   = "generated image access"
	NamePrompts       = "prompts API"
	NameFrontendShell = "frontend shell"
)

// ImageAccessPrompt is the prompt used to create the image fetched by the
// image access check.
const ImageAccessPrompt = "image access probe"

// GenerateParams are the generation options sent to the backend.
type GenerateParams struct {
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
}

// GenerateRequest is the text-to-image request body.
type GenerateRequest struct {
	Prompt string         `json:"prompt"`
	Count  int            `json:"count"`
	Params GenerateParams `json:"params"`
}

// NewGenerateRequest returns the fixed single-image request for prompt.
func NewGenerateRequest(prompt, quality string) GenerateRequest {
	return GenerateRequest{
		Prompt: prompt,
		Count:  1,
		Params: GenerateParams{Size: "512x512", Quality: quality},
	}
}
