// internal/site/templates.go
package site

import "html/template"

var (
	indexTemplate   = template.Must(template.New("index").Parse(indexTemplateHTML))
	failureTemplate = template.Must(template.New("failure").Parse(failureTemplateHTML))
)

const pageHead = `<meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); }
    .unranked { color: #94A3B8; }
    .swatch { display: inline-block; width: 0.8rem; height: 0.8rem; border-radius: 2px; margin-right: 0.4rem; }
  </style>`

const indexTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  ` + pageHead + `
  <title>{{ .Title }}</title>
</head>
<body>
<nav class="navbar navbar-dark mb-4">
  <div class="container-fluid">
    <span class="navbar-brand">{{ .Title }}</span>
    <span class="text-light small">generated {{ .Generated }} &middot; <a class="text-light" href="charts.html">charts</a></span>
  </div>
</nav>
<div class="container-fluid">
  <ul class="nav nav-tabs" role="tablist">
    <li class="nav-item"><button class="nav-link active" data-bs-toggle="tab" data-bs-target="#leaderboard" type="button">Leaderboard</button></li>
    <li class="nav-item"><button class="nav-link" data-bs-toggle="tab" data-bs-target="#categories" type="button">Categories</button></li>
    <li class="nav-item"><button class="nav-link" data-bs-toggle="tab" data-bs-target="#methods" type="button">Methods</button></li>
    <li class="nav-item"><button class="nav-link" data-bs-toggle="tab" data-bs-target="#dataset-ranks" type="button">Dataset Ranks</button></li>
    <li class="nav-item"><button class="nav-link" data-bs-toggle="tab" data-bs-target="#sota" type="button">SOTA</button></li>
  </ul>
  <div class="tab-content card p-3 border-top-0">
    <div class="tab-pane fade show active" id="leaderboard">
      <table class="table table-striped table-sm">
        <thead><tr><th>#</th><th>Model</th><th>Avg Rank</th><th>Comparisons</th>{{ range .CategoryNames }}<th>{{ . }}</th>{{ end }}<th>Best mDice</th></tr></thead>
        <tbody>
        {{ range .Leaderboard }}<tr{{ if not .Ranked }} class="unranked"{{ end }}>
          <td>{{ .Position }}</td><td>{{ .Model }}</td><td>{{ .AvgRank }}</td><td>{{ .Comparisons }}</td>
          {{ range .Categories }}<td>{{ . }}</td>{{ end }}
          <td>{{ .Best }}</td>
        </tr>{{ end }}
        </tbody>
      </table>
    </div>
    <div class="tab-pane fade" id="categories">
      <div class="row">
      {{ range .Categories }}<div class="col-md-4">
        <h5>{{ .Name }}</h5>
        <table class="table table-sm">
          <thead><tr><th>Model</th><th>Avg Rank</th><th>Datasets</th></tr></thead>
          <tbody>{{ range .Rows }}<tr><td>{{ .Model }}</td><td>{{ .Avg }}</td><td>{{ .Ranks }}</td></tr>{{ end }}</tbody>
        </table>
      </div>{{ end }}
      </div>
    </div>
    <div class="tab-pane fade" id="methods">
      <h5>Method comparison</h5>
      <table class="table table-sm w-auto">
        <thead><tr><th>Method</th><th>Avg mDice</th><th>Experiments</th></tr></thead>
        <tbody>{{ range .Comparison }}<tr><td><span class="swatch" style="background-color: {{ .Color }}"></span>{{ .Method }}</td><td>{{ .Avg }}</td><td>{{ .Experiments }}</td></tr>{{ end }}</tbody>
      </table>
      <h5>Average mDice per model</h5>
      <table class="table table-striped table-sm">
        <thead><tr><th>Model</th>{{ range .MethodNames }}<th>{{ . }}</th>{{ end }}</tr></thead>
        <tbody>{{ range .MethodRows }}<tr><td>{{ .Model }}</td>{{ range .Cells }}<td>{{ . }}</td>{{ end }}</tr>{{ end }}</tbody>
      </table>
    </div>
    <div class="tab-pane fade" id="dataset-ranks">
      <div class="table-responsive">
      <table class="table table-striped table-sm">
        <thead><tr><th>Model</th>{{ range .DatasetHeaders }}<th>{{ . }}</th>{{ end }}</tr></thead>
        <tbody>{{ range .DatasetRows }}<tr><td>{{ .Model }}</td>{{ range .Cells }}<td>{{ . }}</td>{{ end }}</tr>{{ end }}</tbody>
      </table>
      </div>
    </div>
    <div class="tab-pane fade" id="sota">
      <table class="table table-striped table-sm">
        <thead><tr><th>Dataset</th><th>Category</th><th>Model</th><th>Method</th><th>mDice</th><th>95% CI</th></tr></thead>
        <tbody>{{ range .Sota }}<tr><td>{{ .Dataset }}</td><td>{{ .Category }}</td><td>{{ .Model }}</td><td>{{ .Method }}</td><td>{{ .Score }}</td><td>{{ .CI }}</td></tr>{{ end }}</tbody>
      </table>
    </div>
  </div>
</div>
<script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"></script>
<script>
  window.densebenchViews = {{ .ViewsJSON }};
</script>
</body>
</html>
`

const failureTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  ` + pageHead + `
  <title>{{ .Title }}</title>
</head>
<body>
<nav class="navbar navbar-dark mb-4">
  <div class="container-fluid"><span class="navbar-brand">{{ .Title }}</span></div>
</nav>
<div class="container">
  <div class="alert alert-danger" role="alert">
    <h4 class="alert-heading">Failed to load benchmark results</h4>
    <p class="mb-0">{{ .Message }}</p>
  </div>
</div>
</body>
</html>
`
