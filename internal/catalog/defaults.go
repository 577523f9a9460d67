package catalog

// DefaultConfig returns the demo catalog data.
func DefaultConfig() Config {
	return Config{
		DefaultMode: DefaultModeLabel,
		Modes: []Mode{
			{ID: "search", Icon: "icon-search", Title: "Search", Subtitle: "Fast answers to everyday questions", Pro: true},
			{ID: "research", Icon: "icon-research", Title: "Research", Subtitle: "Deep research on any topic", Pro: true},
			{ID: "labs", Icon: "icon-labs", Title: "Labs", Subtitle: "Create projects from scratch", Pro: true},
			{ID: "incognito", Icon: "icon-incognito", Title: "Incognito mode", Subtitle: "Activity won't be saved", Toggle: true},
		},
		Models: []AIModel{
			{ID: "best", Title: "Best", Subtitle: "Best for everyday searches", Selected: true},
			{ID: "sonar", Title: "Sonar", Subtitle: "Perplexity's fast model"},
			{ID: "claude-4-sonnet", Title: "Claude 4.0 Sonnet", Subtitle: "Anthropic's advanced model"},
			{ID: "gpt-4.1", Title: "GPT-4.1", Subtitle: "OpenAI's advanced model"},
			{ID: "gemini-2.5-pro", Title: "Gemini 2.5 Pro", Subtitle: "Google's latest model"},
			{ID: "grok-3-beta", Title: "Grok 3 Beta", Subtitle: "xAI's latest model"},
		},
		DisplayNames: map[string]string{
			"Claude 3.7 Sonnet":          "Claude 3.7",
			"Claude 3.7 Sonnet Thinking": "Claude 3.7 Thinking",
		},
	}
}

// Default builds the demo catalog. The demo data is always valid.
func Default() *Catalog {
	c, err := New(DefaultConfig())
	if err != nil {
		panic("catalog: invalid built-in data: " + err.Error())
	}
	return c
}
