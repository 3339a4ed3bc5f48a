package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format selects how results are rendered
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --output value
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q, expected text or yaml", s)
}

// Renderer writes results to w
type Renderer struct {
	w       io.Writer
	noColor bool
	lg      *lipgloss.Renderer
}

// NewRenderer creates a Renderer. With noColor set no styling is applied.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	log := logging.GetLogger("output")
	r := &Renderer{w: w, noColor: noColor}
	if !noColor {
		r.lg = lipgloss.NewRenderer(w)
		log.Debug().Str("colorProfile", fmt.Sprintf("%v", r.lg.ColorProfile())).Msg("Lipgloss renderer created")
	}
	return r
}

func (r *Renderer) style(name, text string) string {
	if r.noColor {
		return text
	}
	return styles.Get(name).Renderer(r.lg).Render(text)
}

// RenderCatalog writes the view in the given format
func (r *Renderer) RenderCatalog(view *CatalogView, format Format) error {
	if format == FormatYAML {
		return r.RenderYAML(view)
	}

	var b strings.Builder
	b.WriteString(r.style("Header", fmt.Sprintf("Available packages (%d)", len(view.Packages))))
	b.WriteString("\n")
	for _, p := range view.Packages {
		b.WriteString(r.packageLine(p))
	}

	b.WriteString(r.style("Header", fmt.Sprintf("Planned installs (%d)", len(view.Plan))))
	b.WriteString("\n")
	if len(view.Plan) == 0 {
		b.WriteString("  nothing to install\n")
	}
	for _, p := range view.Plan {
		b.WriteString(r.packageLine(p))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) packageLine(p PackageView) string {
	line := fmt.Sprintf("%5s ", p.Index+"-")
	if !r.noColor {
		line = r.style("Index", p.Index+"-")
	}
	line += r.style("Title", p.Title)
	if p.API != "" {
		line += ", " + r.style("API", "API "+p.API)
	}
	rev := p.Revision
	if !strings.HasPrefix(rev, "revision") {
		rev = "revision " + rev
	}
	line += ", " + r.style("Revision", rev)
	if p.Planned {
		line += " " + r.style("Planned", "(planned)")
	}
	return line + "\n"
}

// RenderYAML writes v as a YAML document
func (r *Renderer) RenderYAML(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
	}
	return enc.Close()
}

// RenderPaths writes one path per line, unstyled, for the orchestrator to
// consume
func (r *Renderer) RenderPaths(paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(r.w, p); err != nil {
			return err
		}
	}
	return nil
}

// RenderNotice writes a highlighted message
func (r *Renderer) RenderNotice(msg string) error {
	_, err := fmt.Fprintln(r.w, r.style("Notice", msg))
	return err
}

// RenderError writes err with an error label
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.w, "%s %s\n", r.style("Error", "Error:"), err.Error())
	return writeErr
}
