package server

const homeTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; margin: 0; background: #f5f5f5; color: #333; }
    header { display: flex; justify-content: space-between; align-items: center; padding: 16px 32px; background: white; box-shadow: 0 1px 4px rgba(0,0,0,0.08); }
    header a { margin-left: 12px; color: #4A90D9; text-decoration: none; }
    header a.active { font-weight: bold; color: #333; }
    main { max-width: 960px; margin: 0 auto; padding: 32px; }
    .features { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
    .feature { background: white; border-radius: 6px; padding: 16px; white-space: pre-line; }
    table { width: 100%; border-collapse: collapse; background: white; margin-top: 12px; }
    td, th { padding: 8px 12px; border-bottom: 1px solid #eee; text-align: left; }
    footer { text-align: center; color: #888; padding: 24px; }
  </style>
</head>
<body>
  <header>
    <strong>{{.Title}}</strong>
    <nav>
      <a href="/workspace?lang={{.Lang}}">{{.WorkspaceText}}</a>
      {{range .Languages}}<a href="/?lang={{.Code}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
    </nav>
  </header>
  <main>
    <h1>{{.Title}}</h1>
    <p>{{.Search}}</p>
    <h2>{{.FeaturesTitle}}</h2>
    <div class="features">
      {{range .Features}}<div class="feature"><h3>{{.Title}}</h3><p>{{.Description}}</p></div>{{end}}
    </div>
    <h2>{{.PaperListHead}}</h2>
    <p class="total">{{.Total}}</p>
    {{if .Papers}}
    <table>
      {{range .Papers}}<tr data-id="{{.ID}}">
        <td>{{if .URL}}<a href="{{.URL}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</td>
        <td>{{.Authors}}</td>
        <td>{{.Year}}</td>
      </tr>{{end}}
    </table>
    {{end}}
  </main>
  <footer>{{.Copyright}}</footer>
</body>
</html>`
