package digest

import (
	"html/template"
	"log"
	"strings"

	"intelhub/types"
)

// The rendered digest is self-contained markup suitable for direct email
// delivery; all styling is inline.
const digestTemplate = `
<div style="font-family:Arial,Helvetica,sans-serif;max-width:720px;margin:0 auto;border:1px solid #e5e5e5;border-radius:12px;overflow:hidden;">
  <div style="background:#0d1117;color:#00c1a9;padding:18px 22px;">
    <div style="font-size:18px;font-weight:900;">AMC Intelligence Digest</div>
    <div style="font-size:12px;color:#9aa4ad;">{{.DateLabel}} · {{.Department}}</div>
  </div>
  <div style="padding:14px 18px;background:#fff;">
    <table style="width:100%;border-collapse:collapse;">
      {{if .Articles}}{{range .Articles}}
      <tr>
        <td style="padding:14px;border-bottom:1px solid #eee;">
          <div style="font-size:10px;color:#888;font-weight:700;">{{$.DepartmentUpper}}</div>
          <div style="font-size:16px;font-weight:800;margin:6px 0;">
            <a href="{{.URL}}" style="color:#00c1a9;text-decoration:none;">{{.Title}}</a>
          </div>
          <div style="font-size:13px;color:#333;margin:6px 0;">{{.Analysis.Summary}}</div>
          <div style="font-size:12px;background:#eafff6;display:inline-block;padding:6px 10px;border-radius:8px;">
            💡 {{.Analysis.SuggestedAction}}
          </div>
          <div style="font-size:11px;color:#666;margin-top:6px;">
            Score: {{.Analysis.Score}} · Topics: {{join .Analysis.Topics}}
          </div>
        </td>
      </tr>
      {{end}}{{else}}
      <tr><td style="padding:14px;">Sin noticias relevantes en la ventana seleccionada.</td></tr>
      {{end}}
    </table>
  </div>
</div>
`

var digestTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"join": func(topics []string) string { return strings.Join(topics, ", ") },
}).Parse(digestTemplate))

// Render produces the digest HTML for one department. Model-produced text is
// escaped by the template engine before it is embedded in markup.
func Render(department string, articles []types.Article, dateLabel string) string {
	data := struct {
		Department      string
		DepartmentUpper string
		DateLabel       string
		Articles        []types.Article
	}{
		Department:      department,
		DepartmentUpper: strings.ToUpper(department),
		DateLabel:       dateLabel,
		Articles:        articles,
	}

	var b strings.Builder
	if err := digestTmpl.Execute(&b, data); err != nil {
		// Non-fatal; a broken render must not abort the digest pass
		log.Printf("Warning: digest render failed for %s: %v", department, err)
		return ""
	}
	return b.String()
}
