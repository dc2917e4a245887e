package uicheck

// Selector chains probed by the UI checks, in priority order.
var (
	NavigationSelectors = []string{`nav a`, `[role="navigation"] a`, `.nav-link`}
	AppShellSelectors   = []string{`main`, `.main`, `#root`, `.app`}

	PromptInputSelectors = []string{
		`input[type="text"]`,
		`textarea`,
		`[placeholder*="提示"]`,
		`[placeholder*="prompt"]`,
	}
	GenerateButtonSelectors = []string{
		`button:has-text("生成")`,
		`button:has-text("Generate")`,
		`[type="submit"]`,
	}

	PromptFieldChain = []string{
		`input[placeholder*="提示"]`,
		`input[placeholder*="prompt"]`,
		`textarea[placeholder*="提示"]`,
		`textarea[placeholder*="prompt"]`,
		`input[type="text"]`,
		`textarea`,
	}
	SubmitChain = []string{
		`button:has-text("生成")`,
		`button:has-text("Generate")`,
		`button[type="submit"]`,
		`.generate-btn`,
		`#generate-btn`,
	}
)

// GenerationPath identifies the request the generation flow waits for.
const GenerationPath = "/api/v1/generate/text2img"
