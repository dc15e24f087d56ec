package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/temirov/spellscan/internal/spelling"
)

const (
	// SARIFRuleIdentifierConstant identifies near-miss spelling findings.
	SARIFRuleIdentifierConstant = "spelling/near-miss"
	sarifToolNameConstant       = "spellscan"
	sarifInformationURIConstant = "https://github.com/temirov/spellscan"
	sarifRuleDescription        = "A token is within edit distance of a more likely dictionary term."
	sarifMessageTemplate        = "%q may be misspelled; did you mean %q?"
	sarifLevelWarningConstant   = "warning"
	createSARIFErrorTemplate    = "unable to create SARIF report: %w"
)

// SARIFRenderer writes one SARIF result per mistake.
type SARIFRenderer struct {
	ToolVersion string
}

// Render builds a SARIF 2.1.0 report from result and writes it as indented JSON.
func (renderer SARIFRenderer) Render(writer io.Writer, result spelling.AuditResult) error {
	sarifReport, createError := sarif.New(sarif.Version210)
	if createError != nil {
		return fmt.Errorf(createSARIFErrorTemplate, createError)
	}

	run := sarif.NewRunWithInformationURI(sarifToolNameConstant, sarifInformationURIConstant)
	if len(renderer.ToolVersion) > 0 {
		toolVersion := renderer.ToolVersion
		run.Tool.Driver.Version = &toolVersion
	}
	rule := run.AddRule(SARIFRuleIdentifierConstant).
		WithDescription(sarifRuleDescription).
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: sarifLevelWarningConstant})

	for _, fileReport := range result.Files {
		artifactURI := filepath.ToSlash(fileReport.Path)
		for _, record := range fileReport.Lines {
			for _, mistake := range record.Mistakes {
				location := sarif.NewLocation().WithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewArtifactLocation().WithUri(artifactURI)).
						WithRegion(sarif.NewRegion().WithStartLine(record.Number)),
				)
				ruleResult := sarif.NewRuleResult(rule.ID).
					WithMessage(sarif.NewTextMessage(fmt.Sprintf(sarifMessageTemplate, mistake.Original, mistake.Suggestion))).
					WithLevel(sarifLevelWarningConstant).
					WithLocations([]*sarif.Location{location})
				run.AddResult(ruleResult)
			}
		}
	}
	sarifReport.AddRun(run)

	if writeError := sarifReport.PrettyWrite(writer); writeError != nil {
		return fmt.Errorf(writeReportErrorTemplate, writeError)
	}
	return nil
}
