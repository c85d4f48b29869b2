package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var (
	compiledTemplate      *template.Template
	compiledEmptyTemplate *template.Template
)

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
	compiledEmptyTemplate = template.Must(template.New("empty").Parse(emptyTemplate))
}

// CytoscapeCDN is the script tag source for Cytoscape.js.
const CytoscapeCDN = "https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"

// Labels holds the user-facing strings of the graph page.
type Labels struct {
	PageTitle  string
	Title      string
	Authors    string
	Year       string
	Citations  string
	ViewPaper  string
	EmptyTitle string
	EmptyHint  string
}

// DefaultLabels returns English labels.
func DefaultLabels() Labels {
	return Labels{
		PageTitle:  "Citation Graph",
		Title:      "Title",
		Authors:    "Authors",
		Year:       "Year",
		Citations:  "Citations",
		ViewPaper:  "View Full Paper",
		EmptyTitle: "No graph data",
		EmptyHint:  "Import a BibTeX file with at least one @article entry.",
	}
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", or "grid"
	Labels Labels
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout: "force",
		Labels: DefaultLabels(),
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// templateData holds data for the HTML template.
type templateData struct {
	CytoscapeSrc string
	GraphJSON    template.JS
	Layout       string
	Labels       Labels
}

// GenerateHTML generates a self-contained HTML page for the graph.
func GenerateHTML(graph *Graph, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = DefaultLabels()
	}

	var buf bytes.Buffer

	if graph.IsEmpty() {
		if err := compiledEmptyTemplate.Execute(&buf, opts.Labels); err != nil {
			return "", fmt.Errorf("rendering empty graph page: %w", err)
		}
		return buf.String(), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		CytoscapeSrc: CytoscapeCDN,
		GraphJSON:    template.JS(graphJSON),
		Layout:       layoutToCytoscape(opts.Layout),
		Labels:       opts.Labels,
	}

	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering graph page: %w", err)
	}
	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

// layoutToCytoscape converts user-facing layout names to Cytoscape.js names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

const emptyTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.PageTitle}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state { text-align: center; color: #666; }
    .empty-state h2 { margin-bottom: 0.5em; color: #333; }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>{{.EmptyTitle}}</h2>
    <p>{{.EmptyHint}}</p>
  </div>
</body>
</html>`

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Labels.PageTitle}}</title>
  <script src="{{.CytoscapeSrc}}"></script>
  <style>
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy { width: 100%; height: 100vh; background: white; }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 320px;
      font-size: 13px;
      z-index: 1000;
    }
    #tooltip .label { font-weight: bold; margin-bottom: 4px; }
    #tooltip .detail { color: #555; margin: 2px 0; }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";
      const labels = {
        title: "{{.Labels.Title}}",
        authors: "{{.Labels.Authors}}",
        year: "{{.Labels.Year}}",
        citations: "{{.Labels.Citations}}",
        viewPaper: "{{.Labels.ViewPaper}}"
      };

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': '#4A90D9',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '10px',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'width': 'mapData(citationCount, 0, 100, 20, 50)',
              'height': 'mapData(citationCount, 0, 100, 20, 50)'
            }
          },
          {
            selector: 'node[?isMainPaper]',
            style: {
              'background-color': '#E8923A',
              'border-width': 3,
              'border-color': '#c0392b',
              'font-weight': 'bold'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'target-arrow-color': '#95A5A6',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'width': 1.5
            }
          },
          { selector: 'node.highlighted', style: { 'border-width': 3, 'border-color': '#ff6b6b' } },
          { selector: 'node.dimmed', style: { 'opacity': 0.3 } },
          { selector: 'edge.dimmed', style: { 'opacity': 0.2 } }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 100,
          edgeElasticity: 100
        }
      });

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      function nodeTooltip(node) {
        const d = node.data();
        let html = '<div class="label">' + escapeHtml(d.label) + '</div>';
        if (d.title) html += '<div class="detail">' + labels.title + ': ' + escapeHtml(d.title) + '</div>';
        if (d.authors) html += '<div class="detail">' + labels.authors + ': ' + escapeHtml(d.authors) + '</div>';
        html += '<div class="detail">' + labels.year + ': ' + d.year + '</div>';
        html += '<div class="detail">' + labels.citations + ': ' + d.citationCount + '</div>';
        if (d.url) html += '<div class="detail"><a href="' + escapeHtml(d.url) + '" target="_blank">' + labels.viewPaper + '</a></div>';
        return html;
      }

      cy.on('mouseover', 'node', function(evt) {
        tooltip.innerHTML = nodeTooltip(evt.target);
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      });

      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });

      cy.on('tap', 'node', function(evt) {
        const neighborhood = evt.target.neighborhood().add(evt.target);
        cy.elements().removeClass('highlighted dimmed');
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
