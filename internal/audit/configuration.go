package audit

import (
	"strings"

	"github.com/temirov/spellscan/internal/dictionary"
	"github.com/temirov/spellscan/internal/report"
)

const (
	// ColorModeAuto enables colors only when the output is a terminal.
	ColorModeAuto = "auto"
	// ColorModeAlways forces ANSI colors.
	ColorModeAlways = "always"
	// ColorModeNever disables ANSI colors.
	ColorModeNever = "never"

	defaultRootPathConstant          = "."
	defaultDictionaryPathConstant    = "frequency_dictionary_en_82_765.txt"
	defaultCheckoutDirectoryConstant = "temp_git"
	defaultWorkerCountConstant       = 1
	configurationKeySeparator        = "."
	extensionPrefixConstant          = "."
)

// DefaultExtensions lists the file extensions audited when none are configured.
var DefaultExtensions = []string{".txt", ".md", ".cs"}

// ColorModes lists the accepted color modes.
var ColorModes = []string{ColorModeAuto, ColorModeAlways, ColorModeNever}

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Roots              []string                `mapstructure:"roots"`
	Extensions         []string                `mapstructure:"extensions"`
	IgnoredDirectories []string                `mapstructure:"ignored_directories"`
	Dictionary         DictionaryConfiguration `mapstructure:"dictionary"`
	Workers            int                     `mapstructure:"workers"`
	Format             string                  `mapstructure:"format"`
	Color              string                  `mapstructure:"color"`
	FailOnMistakes     bool                    `mapstructure:"fail_on_mistakes"`
	Source             SourceConfiguration     `mapstructure:"source"`
}

// DictionaryConfiguration locates the frequency dictionary and its column layout.
type DictionaryConfiguration struct {
	Path            string `mapstructure:"path"`
	TermIndex       int    `mapstructure:"term_index"`
	CountIndex      int    `mapstructure:"count_index"`
	MaxEditDistance int    `mapstructure:"max_edit_distance"`
}

// SourceConfiguration describes an optional remote repository to audit instead of local roots.
type SourceConfiguration struct {
	Repository string `mapstructure:"repository"`
	Checkout   string `mapstructure:"checkout"`
	Branch     string `mapstructure:"branch"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:              []string{defaultRootPathConstant},
		Extensions:         append([]string{}, DefaultExtensions...),
		IgnoredDirectories: []string{".git"},
		Dictionary: DictionaryConfiguration{
			Path:            defaultDictionaryPathConstant,
			TermIndex:       dictionary.DefaultTermIndex,
			CountIndex:      dictionary.DefaultCountIndex,
			MaxEditDistance: dictionary.DefaultMaxEditDistance,
		},
		Workers: defaultWorkerCountConstant,
		Format:  report.FormatTextConstant,
		Color:   ColorModeAuto,
		Source: SourceConfiguration{
			Checkout: defaultCheckoutDirectoryConstant,
		},
	}
}

// DefaultConfigurationValues flattens the default configuration into viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	key := func(name string) string {
		if len(prefix) == 0 {
			return name
		}
		return prefix + configurationKeySeparator + name
	}

	return map[string]any{
		key("roots"):                        defaults.Roots,
		key("extensions"):                   defaults.Extensions,
		key("ignored_directories"):          defaults.IgnoredDirectories,
		key("dictionary.path"):              defaults.Dictionary.Path,
		key("dictionary.term_index"):        defaults.Dictionary.TermIndex,
		key("dictionary.count_index"):       defaults.Dictionary.CountIndex,
		key("dictionary.max_edit_distance"): defaults.Dictionary.MaxEditDistance,
		key("workers"):                      defaults.Workers,
		key("format"):                       defaults.Format,
		key("color"):                        defaults.Color,
		key("fail_on_mistakes"):             defaults.FailOnMistakes,
		key("source.repository"):            defaults.Source.Repository,
		key("source.checkout"):              defaults.Source.Checkout,
		key("source.branch"):                defaults.Source.Branch,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Roots = sanitizeValues(configuration.Roots)
	sanitized.Extensions = sanitizeExtensions(configuration.Extensions)
	if len(sanitized.Extensions) == 0 {
		sanitized.Extensions = defaults.Extensions
	}
	if configuration.IgnoredDirectories != nil {
		sanitized.IgnoredDirectories = sanitizeValues(configuration.IgnoredDirectories)
	}

	sanitized.Dictionary.Path = strings.TrimSpace(configuration.Dictionary.Path)
	if len(sanitized.Dictionary.Path) == 0 {
		sanitized.Dictionary.Path = defaults.Dictionary.Path
	}
	if sanitized.Dictionary.MaxEditDistance <= 0 {
		sanitized.Dictionary.MaxEditDistance = defaults.Dictionary.MaxEditDistance
	}
	if sanitized.Workers <= 0 {
		sanitized.Workers = defaults.Workers
	}

	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = defaults.Format
	}
	sanitized.Color = strings.ToLower(strings.TrimSpace(configuration.Color))
	if len(sanitized.Color) == 0 {
		sanitized.Color = defaults.Color
	}

	sanitized.Source.Repository = strings.TrimSpace(configuration.Source.Repository)
	sanitized.Source.Branch = strings.TrimSpace(configuration.Source.Branch)
	sanitized.Source.Checkout = strings.TrimSpace(configuration.Source.Checkout)
	if len(sanitized.Source.Checkout) == 0 {
		sanitized.Source.Checkout = defaults.Source.Checkout
	}

	return sanitized
}

func sanitizeValues(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

// sanitizeExtensions accepts both "md" and ".md" spellings.
func sanitizeExtensions(raw []string) []string {
	extensions := sanitizeValues(raw)
	for index, extension := range extensions {
		if !strings.HasPrefix(extension, extensionPrefixConstant) {
			extensions[index] = extensionPrefixConstant + extension
		}
	}
	return extensions
}
