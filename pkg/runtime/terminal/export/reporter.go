package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table or yaml)", s)
	}
}

type TableConfig struct {
	IDWidth     int
	TitleWidth  int
	TypeWidth   int
	StatusWidth int
	DateWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:     36,
		TitleWidth:  40,
		TypeWidth:   4,
		StatusWidth: 10,
		DateWidth:   10,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
	format Format
}

func NewReporter(writer io.Writer, format Format) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = FormatTable
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		format: format,
	}
}

var statusColors = map[string]*color.Color{
	"draft":     color.New(color.FgYellow),
	"submitted": color.New(color.FgCyan),
	"approved":  color.New(color.FgGreen, color.Bold),
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

const reportsTemplate = `{{separator}}
{{header}}
{{separator}}
{{range .}}{{row .}}
{{end}}{{separator}}
{{range .}}{{if .KPIs}}
=== {{.Title}} ===
{{range .KPIs}}{{$category := .Name}}{{range .Subcategories}}{{range .Metrics}}- {{$category}} / {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}{{if .Methodology}} ({{.Methodology}}){{end}}
{{end}}{{end}}{{end}}{{end}}{{end}}`

// Reports prints reports as a table followed by each report's KPIs, or as a
// YAML document.
func (c *Reporter) Reports(reports []api.Report) error {
	if c.format == FormatYAML {
		return c.yaml(reports)
	}

	cfg := c.config
	cell := func(s string, width int) string {
		return fmt.Sprintf("%-*s", width, truncate(s, width))
	}
	funcMap := template.FuncMap{
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", cfg.IDWidth+2),
				strings.Repeat("-", cfg.TitleWidth+2),
				strings.Repeat("-", cfg.TypeWidth+2),
				strings.Repeat("-", cfg.StatusWidth+2),
				strings.Repeat("-", cfg.DateWidth+2))
		},
		"header": func() string {
			return fmt.Sprintf("| %s | %s | %s | %s | %s |",
				cell("ID", cfg.IDWidth),
				cell("Title", cfg.TitleWidth),
				cell("Type", cfg.TypeWidth),
				cell("Status", cfg.StatusWidth),
				cell("Submitted", cfg.DateWidth))
		},
		"row": func(r api.Report) string {
			status := cell(r.Status, cfg.StatusWidth)
			if col, ok := statusColors[r.Status]; ok {
				status = col.Sprint(status)
			}
			return fmt.Sprintf("| %s | %s | %s | %s | %s |",
				cell(r.ID, cfg.IDWidth),
				cell(r.Title, cfg.TitleWidth),
				cell(r.Type, cfg.TypeWidth),
				status,
				cell(r.SubmissionDate, cfg.DateWidth))
		},
	}
	return c.execute("reports", reportsTemplate, funcMap, reports)
}

const partnersTemplate = `Sort: {{if .Sort.Key}}{{.Sort.Key}} {{.Sort.Direction}}{{else}}none{{end}}{{if .Filter}}  Filter: {{.Filter}}{{end}}
{{range .Partners}}{{printf "%-4d %-30s %-14s %3d  %s" .ID .Name .Type .Projects .TotalImpact}}
{{else}}No partners match.
{{end}}`

func (c *Reporter) Partners(view api.PartnerView) error {
	if c.format == FormatYAML {
		return c.yaml(view.Partners)
	}
	return c.execute("partners", partnersTemplate, nil, view)
}

const frameworksTemplate = `{{range $i, $name := .}}{{inc $i | printf "%2d"}}. {{$name}}
{{end}}`

func (c *Reporter) Frameworks(names []string) error {
	if c.format == FormatYAML {
		return c.yaml(names)
	}
	funcMap := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	return c.execute("frameworks", frameworksTemplate, funcMap, names)
}

const categoriesTemplate = `{{range .}}
=== {{.Name}} ===
{{.Description}}
{{range .Subcategories}}- {{.Name}}: {{.Description}}
{{end}}{{end}}`

func (c *Reporter) Categories(categories []api.Category) error {
	if c.format == FormatYAML {
		return c.yaml(categories)
	}
	return c.execute("categories", categoriesTemplate, nil, categories)
}

func (c *Reporter) execute(name, text string, funcMap template.FuncMap, data any) error {
	t, err := template.New(name).Funcs(funcMap).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

func (c *Reporter) yaml(v any) error {
	enc := yaml.NewEncoder(c.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
