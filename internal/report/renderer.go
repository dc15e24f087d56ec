package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/spellscan/internal/spelling"
)

const (
	// FormatTextConstant selects the line-oriented text report.
	FormatTextConstant = "text"
	// FormatYAMLConstant selects the YAML report.
	FormatYAMLConstant = "yaml"
	// FormatSARIFConstant selects the SARIF 2.1.0 report.
	FormatSARIFConstant = "sarif"

	newlineConstant           = "\n"
	unsupportedFormatTemplate = "unsupported report format %q"
	writeReportErrorTemplate  = "unable to write report: %w"
)

// SupportedFormats lists the accepted report formats.
var SupportedFormats = []string{FormatTextConstant, FormatYAMLConstant, FormatSARIFConstant}

// Renderer writes an audit result to an output sink.
type Renderer interface {
	Render(writer io.Writer, result spelling.AuditResult) error
}

// RendererOptions configures NewRenderer.
type RendererOptions struct {
	Format       string
	ColorEnabled bool
	ToolVersion  string
}

// NewRenderer selects the renderer for the requested format.
func NewRenderer(options RendererOptions) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(options.Format)) {
	case FormatTextConstant, "":
		if options.ColorEnabled {
			return NewANSIRenderer(true), nil
		}
		return PlainRenderer{}, nil
	case FormatYAMLConstant:
		return YAMLRenderer{}, nil
	case FormatSARIFConstant:
		return SARIFRenderer{ToolVersion: options.ToolVersion}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatTemplate, options.Format)
	}
}

// PlainRenderer writes formatted lines without styling.
type PlainRenderer struct{}

// Render writes every formatted line followed by a newline.
func (PlainRenderer) Render(writer io.Writer, result spelling.AuditResult) error {
	for _, line := range Format(result) {
		if _, writeError := io.WriteString(writer, line.Text()+newlineConstant); writeError != nil {
			return fmt.Errorf(writeReportErrorTemplate, writeError)
		}
	}
	return nil
}

// ANSIRenderer writes formatted lines with terminal colors. Each renderer owns its palette, so
// enabling or disabling colors never touches process-wide state.
type ANSIRenderer struct {
	palette map[Severity]*color.Color
}

// NewANSIRenderer builds a renderer whose colors are forced on or off regardless of the terminal.
func NewANSIRenderer(enabled bool) *ANSIRenderer {
	palette := map[Severity]*color.Color{
		SeverityPlain:      color.New(color.Reset),
		SeverityPath:       color.New(color.Bold),
		SeverityOriginal:   color.New(color.FgRed),
		SeveritySuggestion: color.New(color.FgGreen),
		SeverityWarning:    color.New(color.FgYellow),
		SeveritySuccess:    color.New(color.FgGreen),
	}
	for _, paletteColor := range palette {
		if enabled {
			paletteColor.EnableColor()
		} else {
			paletteColor.DisableColor()
		}
	}
	return &ANSIRenderer{palette: palette}
}

// Render writes every formatted line, coloring each span by severity.
func (renderer *ANSIRenderer) Render(writer io.Writer, result spelling.AuditResult) error {
	for _, line := range Format(result) {
		for _, span := range line {
			if _, writeError := renderer.colorFor(span.Severity).Fprint(writer, span.Text); writeError != nil {
				return fmt.Errorf(writeReportErrorTemplate, writeError)
			}
		}
		if _, writeError := io.WriteString(writer, newlineConstant); writeError != nil {
			return fmt.Errorf(writeReportErrorTemplate, writeError)
		}
	}
	return nil
}

func (renderer *ANSIRenderer) colorFor(severity Severity) *color.Color {
	if paletteColor, found := renderer.palette[severity]; found {
		return paletteColor
	}
	return renderer.palette[SeverityPlain]
}
