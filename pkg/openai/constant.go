package openai

import "time"

const (
	// DefaultBaseURL is the OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the default chat model
	DefaultModel = "gpt-4o"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 90 * time.Second
)

// Base URLs of other OpenAI-compatible services.
const (
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
)
