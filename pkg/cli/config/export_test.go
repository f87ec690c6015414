package config

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, dataDir, sqliteDB string) *Repository {
	return &Repository{
		backend:  backend,
		dataDir:  dataDir,
		sqliteDB: sqliteDB,
	}
}

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, apiKey, model string) *LLM {
	return &LLM{
		provider: provider,
		apiKey:   apiKey,
		model:    model,
	}
}

// NewRateLimitForTest creates a RateLimit config for testing purposes
func NewRateLimitForTest(limit int, disabled bool) *RateLimit {
	return &RateLimit{
		limit:    limit,
		disabled: disabled,
	}
}

// NewCoachForTest creates a Coach config for testing purposes
func NewCoachForTest(personaPath string) *Coach {
	return &Coach{
		personaPath: personaPath,
	}
}
