package site

// View identifies a page of the console.
type View string

// Views of the console. Each route maps to exactly one of these.
const (
	ViewHome          View = "home"
	ViewChat          View = "chat"
	ViewSQL           View = "sql"
	ViewKnowledge     View = "knowledge"
	ViewAgent         View = "agent"
	ViewMCP           View = "mcp"
	ViewUnifiedChat   View = "unified-chat"
	ViewProduction    View = "production"
	ViewOrchestration View = "orchestration"
)

// Route maps a URL path to a view.
type Route struct {
	Path string `json:"path"`
	View View   `json:"view"`
}

// DefaultRoutes returns the console route table. The table only grows;
// there are no guards, redirects or wildcard routes.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", View: ViewHome},
		{Path: "/chat", View: ViewChat},
		{Path: "/sql", View: ViewSQL},
		{Path: "/knowledge", View: ViewKnowledge},
		{Path: "/agent", View: ViewAgent},
		{Path: "/mcp", View: ViewMCP},
		{Path: "/unified", View: ViewUnifiedChat},
		{Path: "/production", View: ViewProduction},
		{Path: "/orchestration", View: ViewOrchestration},
	}
}

// Table is an immutable path -> view lookup.
type Table struct {
	routes []Route
	byPath map[string]View
}

// NewTable indexes routes. A duplicated path keeps its first view.
func NewTable(routes []Route) *Table {
	t := &Table{
		routes: append([]Route(nil), routes...),
		byPath: make(map[string]View, len(routes)),
	}
	for _, r := range routes {
		if _, ok := t.byPath[r.Path]; !ok {
			t.byPath[r.Path] = r.View
		}
	}
	return t
}

// Resolve returns the view of an exact path match.
func (t *Table) Resolve(path string) (View, bool) {
	v, ok := t.byPath[path]
	return v, ok
}

// Routes returns a copy of the table in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}
