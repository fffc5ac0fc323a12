package server

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// indexPage lists the registered routes, most specific first.
var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>JWT Pizza Mock API</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            max-width: 800px;
            margin: 50px auto;
            padding: 20px;
            background: #f5f5f5;
        }
        .container {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h1 { color: #333; margin-bottom: 10px; }
        .subtitle { color: #666; margin-bottom: 30px; }
        code { background: #e8f4fc; padding: 2px 6px; border-radius: 4px; }
        li { margin: 6px 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>JWT Pizza Mock API</h1>
        <p class="subtitle">Point the storefront's VITE_PIZZA_SERVICE_URL at this server.</p>
        <ul id="routes">
        {{- range .Routes}}
            <li><code>{{.}}</code></li>
        {{- else}}
            <li>no routes registered</li>
        {{- end}}
        </ul>
    </div>
</body>
</html>
`))

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Routes []string }{Routes: s.routes.Routes()}
	if err := indexPage.Execute(w, data); err != nil {
		s.logger.Error("render index", zap.Error(err))
	}
}
