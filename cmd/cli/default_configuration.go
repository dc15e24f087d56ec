package cli

import (
	"embed"

	"github.com/spf13/cobra"
)

const (
	defaultConfigurationFileNameConstant     = "default_config.yaml"
	defaultConfigurationCommandNameConstant  = "default-config"
	defaultConfigurationCommandShortConstant = "Print the built-in configuration as YAML"
)

//go:embed default_config.yaml
var defaultConfigurationFiles embed.FS

// defaultConfigurationDocument returns a fresh copy of the built-in YAML configuration.
func defaultConfigurationDocument() []byte {
	content, readError := defaultConfigurationFiles.ReadFile(defaultConfigurationFileNameConstant)
	if readError != nil {
		return nil
	}
	return content
}

// newDefaultConfigurationCommand prints the built-in configuration so it can seed a config.yaml.
func newDefaultConfigurationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   defaultConfigurationCommandNameConstant,
		Short: defaultConfigurationCommandShortConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			_, writeError := command.OutOrStdout().Write(defaultConfigurationDocument())
			return writeError
		},
	}
}
