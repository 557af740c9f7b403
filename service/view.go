package service

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/css"
	"github.com/cbsinteractive/linesearch/vector"
)

var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head><title>line search</title></head>
<body style="{{.Body}}">
<p style="{{.Caption}}">{{len .Rows}} result(s) {{.Hash}}</p>
<table style="{{.Table}}">
<tr>{{range .Headers}}<th style="{{$.Cell}}">{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td style="{{$.Cell}}">{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

type viewData struct {
	Hash    string
	Headers []string
	Rows    [][]string

	Body, Caption, Table, Cell template.CSS
}

func style(s css.Style) template.CSS {
	return template.CSS(s.String())
}

// view renders a search as an HTML table. It accepts the same
// parameters as a search query.
func (s *Server) view(rq *request) bool {
	q, err := api.ParseSearchQuery(rq.r.URL.Query(), s.Fps)
	if err != nil {
		return rq.writeerror("bad search query", http.StatusBadRequest, err)
	}
	res, err := s.search(q)
	if err != nil {
		s.errReporter.ReportException(err)
		return rq.writeerror("search failed", http.StatusInternalServerError, err)
	}

	frame := css.NewRect(vector.Vec2{X: 2, Y: 2}, vector.Vec2{X: 96, Y: 90})
	frame.UnitX, frame.UnitY = css.ViewportWidth, css.ViewportHeight
	frame.UnitW, frame.UnitH = css.Percentage, css.Percentage

	data := viewData{
		Hash:    res.Hash,
		Body:    style(css.Style{}.Set("fontFamily", "monospace").Set("margin", css.Px(0))),
		Caption: style(css.Style{}.Set("fontSize", css.Em(0.8)).Set("color", "#666")),
		Table: style(css.Style{}.
			Set("", frame.Style()).
			Set("borderCollapse", "collapse").
			Set("overflow", "auto")),
		Cell: style(css.Style{}.
			Set("padding", css.Rem(0.25)).
			Set("borderBottom", css.Px(1).String()+" solid #ddd").
			Set("textAlign", "left")),
	}
	for _, k := range api.Columns {
		name, _ := k.DisplayName()
		data.Headers = append(data.Headers, name)
	}
	for _, row := range res.Results {
		cells := make([]string, len(api.Columns))
		for i, k := range api.Columns {
			cells[i], _ = row.Get(k)
		}
		data.Rows = append(data.Rows, cells)
	}

	var buf bytes.Buffer
	if err := viewTemplate.Execute(&buf, data); err != nil {
		return rq.writeerror("rendering failed", http.StatusInternalServerError, err)
	}
	return rq.writebody(&buf, "text/html; charset=utf-8")
}
