package feed

import (
	"html/template"
	"io"
	"os"
)

// The browsable index: the outline rendered as a Bootstrap list with a
// client-side case-insensitive substring filter.
var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
    <meta charset="utf-8">
    <title>OPML Viewer</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
    <style>
        body { background-color: #f0f8ff; color: #002147; }
        .navbar { background-color: #002147; }
        .navbar-brand, .nav-link { color: #ffffff !important; }
        .container { margin-top: 30px; }
        .opml-container { background-color: #ffffff; padding: 20px; border-radius: 10px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
        .footer { background-color: #002147; color: white; text-align: center; padding: 20px 0; margin-top: 30px; }
        .btn-custom { background-color: #002147; color: white; }
        .btn-custom:hover { background-color: #003366; color: white; }
        .opml-item:hover { background-color: #dfefff; transition: background-color 0.3s ease-in-out; }
    </style>
    <script>
        function searchOPML() {
            let input = document.getElementById('searchInput').value.toLowerCase();
            let items = document.getElementsByClassName('opml-item');
            for (let item of items) {
                let text = item.textContent.toLowerCase();
                item.style.display = text.includes(input) ? '' : 'none';
            }
        }
    </script>
</head>
<body>
<nav class="navbar navbar-expand-lg navbar-dark">
    <div class="container"><a class="navbar-brand" href="#">OPML Viewer</a></div>
</nav>
<div class="container">
    <div class="opml-container">
        <div class="mb-3">
            <input type="text" id="searchInput" class="form-control" placeholder="Search..." onkeyup="searchOPML()">
        </div>
        <ul class="list-group">
{{- range .Body.Outlines}}
{{- if .XMLURL}}
            <li class="list-group-item bg-white shadow-sm p-2 opml-item"><a href="{{.XMLURL}}" class="text-decoration-none text-primary">{{.Text}}</a></li>
{{- else}}
            <li class="list-group-item bg-white shadow-sm p-2 opml-item">{{.Text}}</li>
{{- end}}
{{- end}}
        </ul>
    </div>
</div>
<footer class="footer">
    <p>&copy; 2025 OPML Viewer. All rights reserved.</p>
</footer>
</body>
</html>
`))

// RenderHTML writes the browsable index page for the outline.
func (o *OPML) RenderHTML(w io.Writer) error {
	return indexTmpl.Execute(w, o)
}

func (o *OPML) WriteHTMLFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := o.RenderHTML(f); err != nil {
		return err
	}
	return f.Close()
}
