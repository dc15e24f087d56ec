package audit

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/spellscan/internal/discovery"
	"github.com/temirov/spellscan/internal/report"
	"github.com/temirov/spellscan/internal/utils/flags"
	pathutils "github.com/temirov/spellscan/internal/utils/path"
)

const (
	commandNameConstant            = "audit"
	commandUsageConstant           = commandNameConstant + " [root...]"
	commandShortDescription        = "Report likely misspelled words in text and source files"
	commandLongDescription         = "audit walks the given roots (or a fresh clone of --repository), checks every word of every matching file against a frequency dictionary, and prints each near-miss with its suggested correction."
	flagExtensionName              = "extension"
	flagExtensionDescription       = "File extension to audit; repeat or separate with commas."
	flagDictionaryName             = "dictionary"
	flagDictionaryDescription      = "Path to the term/frequency dictionary file."
	flagMaxEditDistanceName        = "max-edit-distance"
	flagMaxEditDistanceDescription = "Largest edit distance considered a near-miss."
	flagWorkersName                = "workers"
	flagWorkersDescription         = "Number of files scanned concurrently."
	flagFormatName                 = "format"
	flagFormatDescription          = "Report format."
	flagColorName                  = "color"
	flagColorDescription           = "Colorize the text report."
	flagRepositoryName             = "repository"
	flagRepositoryDescription      = "Clone this repository URL and audit the checkout instead of local roots."
	flagCheckoutName               = "checkout"
	flagCheckoutDescription        = "Directory that receives the clone; any previous content is deleted."
	flagBranchName                 = "branch"
	flagBranchDescription          = "Branch to clone; defaults to the remote HEAD."
	flagFailOnMistakesName         = "fail-on-mistakes"
	flagFailOnMistakesDescription  = "Exit with an error when any mistake is reported."
	flagDebugName                  = "debug"
	flagDebugDescription           = "Print discovery diagnostics to stderr."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current audit configuration.
type ConfigurationProvider func() CommandConfiguration

// VersionProvider returns the version reported in SARIF output.
type VersionProvider func() string

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	VersionProvider       VersionProvider
	Discoverer            FileDiscoverer
	DictionaryLoader      DictionaryLoader
	Fetcher               RepositoryFetcher
	TerminalDetector      TerminalDetector
	HomeExpander          *pathutils.HomeExpander
}

type commandFlagValues struct {
	format         string
	color          string
	failOnMistakes bool
}

// Build constructs the cobra command for spelling audits.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	flagValues := &commandFlagValues{}

	command := &cobra.Command{
		Use:   commandUsageConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, flagValues)
		},
	}

	commandFlags := command.Flags()
	commandFlags.StringSlice(flagExtensionName, nil, flagExtensionDescription)
	commandFlags.String(flagDictionaryName, "", flagDictionaryDescription)
	commandFlags.Int(flagMaxEditDistanceName, 0, flagMaxEditDistanceDescription)
	commandFlags.Int(flagWorkersName, 0, flagWorkersDescription)
	flags.AddChoiceFlag(commandFlags, &flagValues.format, flagFormatName, report.FormatTextConstant, report.SupportedFormats, flagFormatDescription)
	flags.AddChoiceFlag(commandFlags, &flagValues.color, flagColorName, ColorModeAuto, ColorModes, flagColorDescription)
	commandFlags.String(flagRepositoryName, "", flagRepositoryDescription)
	commandFlags.String(flagCheckoutName, "", flagCheckoutDescription)
	commandFlags.String(flagBranchName, "", flagBranchDescription)
	flags.AddToggleFlag(commandFlags, &flagValues.failOnMistakes, flagFailOnMistakesName, false, flagFailOnMistakesDescription)
	commandFlags.Bool(flagDebugName, false, flagDebugDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, flagValues *commandFlagValues) error {
	options := builder.parseOptions(command, arguments, flagValues)
	logger := builder.resolveLogger()

	discoverer := builder.Discoverer
	if discoverer == nil {
		discoverer = discovery.NewFilesystemFileDiscoverer(options.IgnoredDirectories)
	}

	service := NewService(discoverer, builder.DictionaryLoader, builder.Fetcher, logger, command.OutOrStdout(), command.ErrOrStderr())
	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string, flagValues *commandFlagValues) CommandOptions {
	configuration := builder.resolveConfiguration()
	commandFlags := command.Flags()

	if len(arguments) > 0 {
		configuration.Roots = append([]string{}, arguments...)
	}
	if commandFlags.Changed(flagExtensionName) {
		configuration.Extensions, _ = commandFlags.GetStringSlice(flagExtensionName)
	}
	if commandFlags.Changed(flagDictionaryName) {
		configuration.Dictionary.Path, _ = commandFlags.GetString(flagDictionaryName)
	}
	if commandFlags.Changed(flagMaxEditDistanceName) {
		configuration.Dictionary.MaxEditDistance, _ = commandFlags.GetInt(flagMaxEditDistanceName)
	}
	if commandFlags.Changed(flagWorkersName) {
		configuration.Workers, _ = commandFlags.GetInt(flagWorkersName)
	}
	if commandFlags.Changed(flagFormatName) {
		configuration.Format = flagValues.format
	}
	if commandFlags.Changed(flagColorName) {
		configuration.Color = flagValues.color
	}
	if commandFlags.Changed(flagRepositoryName) {
		configuration.Source.Repository, _ = commandFlags.GetString(flagRepositoryName)
	}
	if commandFlags.Changed(flagCheckoutName) {
		configuration.Source.Checkout, _ = commandFlags.GetString(flagCheckoutName)
	}
	if commandFlags.Changed(flagBranchName) {
		configuration.Source.Branch, _ = commandFlags.GetString(flagBranchName)
	}
	if commandFlags.Changed(flagFailOnMistakesName) {
		configuration.FailOnMistakes = flagValues.failOnMistakes
	}
	debugFlag, _ := commandFlags.GetBool(flagDebugName)

	configuration = configuration.sanitize()
	homeExpander := builder.resolveHomeExpander()

	options := CommandOptions{
		Roots:              homeExpander.ExpandAll(configuration.Roots),
		Extensions:         configuration.Extensions,
		IgnoredDirectories: configuration.IgnoredDirectories,
		Dictionary: DictionaryOptions{
			Path:            homeExpander.Expand(configuration.Dictionary.Path),
			TermIndex:       configuration.Dictionary.TermIndex,
			CountIndex:      configuration.Dictionary.CountIndex,
			MaxEditDistance: configuration.Dictionary.MaxEditDistance,
		},
		Workers:        configuration.Workers,
		Format:         configuration.Format,
		ColorEnabled:   resolveColorEnabled(configuration.Color, command.OutOrStdout(), builder.TerminalDetector),
		FailOnMistakes: configuration.FailOnMistakes,
		Source: SourceOptions{
			Repository: configuration.Source.Repository,
			Checkout:   homeExpander.Expand(configuration.Source.Checkout),
			Branch:     configuration.Source.Branch,
		},
		DebugOutput: debugFlag,
		ToolVersion: builder.resolveVersion(),
	}

	return options
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}

func (builder *CommandBuilder) resolveVersion() string {
	if builder.VersionProvider == nil {
		return ""
	}
	return builder.VersionProvider()
}
