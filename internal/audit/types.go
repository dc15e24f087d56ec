package audit

// CommandOptions captures the resolved parameters for one audit run.
type CommandOptions struct {
	Roots              []string
	Extensions         []string
	IgnoredDirectories []string
	Dictionary         DictionaryOptions
	Workers            int
	Format             string
	ColorEnabled       bool
	FailOnMistakes     bool
	Source             SourceOptions
	DebugOutput        bool
	ToolVersion        string
}

// DictionaryOptions locates and configures the frequency dictionary.
type DictionaryOptions struct {
	Path            string
	TermIndex       int
	CountIndex      int
	MaxEditDistance int
}

// SourceOptions selects a remote repository to clone before auditing. An empty Repository audits Roots.
type SourceOptions struct {
	Repository string
	Checkout   string
	Branch     string
}
