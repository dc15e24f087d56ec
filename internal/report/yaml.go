package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/spellscan/internal/spelling"
)

const yamlIndentConstant = 2

type yamlDocument struct {
	MistakeCount int              `yaml:"mistake_count"`
	Files        []yamlFile       `yaml:"files"`
	Unreadable   []yamlUnreadable `yaml:"unreadable,omitempty"`
}

type yamlFile struct {
	Path  string     `yaml:"path"`
	Lines []yamlLine `yaml:"lines"`
}

type yamlLine struct {
	Number     int                    `yaml:"number"`
	Text       string                 `yaml:"text"`
	Suggestion string                 `yaml:"suggestion"`
	Mistakes   []spelling.MistakePair `yaml:"mistakes"`
}

type yamlUnreadable struct {
	Path  string `yaml:"path"`
	Error string `yaml:"error"`
}

// YAMLRenderer writes files with mistakes and unreadable files as a YAML document.
type YAMLRenderer struct{}

// Render encodes the display-worthy portion of result.
func (YAMLRenderer) Render(writer io.Writer, result spelling.AuditResult) error {
	document := yamlDocument{MistakeCount: result.MistakeCount(), Files: []yamlFile{}}
	for _, fileReport := range result.Files {
		if !fileReport.HasMistakes() {
			continue
		}
		file := yamlFile{Path: fileReport.Path}
		for _, record := range fileReport.Lines {
			if !record.HasMistakes() {
				continue
			}
			file.Lines = append(file.Lines, yamlLine{
				Number:     record.Number,
				Text:       record.Text,
				Suggestion: SubstituteSuggestions(record),
				Mistakes:   record.Mistakes,
			})
		}
		document.Files = append(document.Files, file)
	}
	for _, unreadable := range result.Unreadable {
		document.Unreadable = append(document.Unreadable, yamlUnreadable{Path: unreadable.Path, Error: unreadableCause(unreadable.Err).Error()})
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return fmt.Errorf(writeReportErrorTemplate, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(writeReportErrorTemplate, closeError)
	}
	return nil
}
