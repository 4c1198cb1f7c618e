package site

// Template and static file names served by the route table
const (
	IndexTemplate = "index.html"
	RobotsFile    = "robots.txt"
	SitemapFile   = "sitemap.xml"
)

// Action is what a route does with a matched request.
// It is either RenderTemplate or ServeFile.
type Action interface {
	isAction()
}

// RenderTemplate renders the named template with no data.
type RenderTemplate struct {
	Name string
}

// ServeFile streams the named file from the static directory.
type ServeFile struct {
	Name string
}

func (RenderTemplate) isAction() {}
func (ServeFile) isAction()      {}

// Route maps one literal URL path to an action
type Route struct {
	Path   string
	Action Action
}

// Routes returns the fixed route table. Every user facing path is
// listed once at the root and once under prefix. An empty prefix
// yields the root entries only.
func Routes(prefix string) []Route {
	pages := []Route{
		{Path: "/", Action: RenderTemplate{Name: IndexTemplate}},
		{Path: "/" + RobotsFile, Action: ServeFile{Name: RobotsFile}},
		{Path: "/" + SitemapFile, Action: ServeFile{Name: SitemapFile}},
	}
	if prefix == "" {
		return pages
	}

	routes := make([]Route, 0, len(pages)*2)
	for _, p := range pages {
		routes = append(routes, p, Route{Path: prefix + p.Path, Action: p.Action})
	}
	return routes
}

// Describe returns a short human readable form of an action
func Describe(a Action) string {
	switch a := a.(type) {
	case RenderTemplate:
		return "render " + a.Name
	case ServeFile:
		return "file " + a.Name
	default:
		return "unknown"
	}
}
