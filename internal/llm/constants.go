package llm

// Error message templates
const (
	errRateLimiter          = "rate limiter error: %w"
	errOpenAIChatCompletion = "openai chat completion error: %w"
)

// DefaultCategory is used when the model returns none.
const DefaultCategory = "General Interest"

// Categories the scoring prompt asks the model to choose from.
const (
	CategorySpeakingAnxiety = "Speaking Anxiety"
	CategoryLifeEvent       = "Life Event"
	CategoryAppFrustration  = "App Frustration"
	CategoryHeritageSpeaker = "Heritage Speaker"
	CategoryPlateau         = "Intermediate Plateau"
	CategoryPartnerSearch   = "Practice Partner Search"
)
