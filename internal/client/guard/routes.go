package guard

// Route is a named navigation target with its access flags.
type Route struct {
	Name string
	Path string
	// RequiredLogin routes are only reachable by a logged-in user.
	RequiredLogin bool
	// RedirectAlreadyLogin routes send a logged-in user back home.
	RedirectAlreadyLogin bool
}

const (
	RouteHome   = "home"
	RouteLogin  = "login"
	RouteSignup = "signup"
	RouteColumn = "column"
	RouteCreate = "create"
	RoutePost   = "post"
	RouteEdit   = "edit"
)

// Routes is a route table indexed by name.
type Routes map[string]Route

// DefaultRoutes is the client's navigation table.
func DefaultRoutes() Routes {
	return NewRoutes(
		Route{Name: RouteHome, Path: "/"},
		Route{Name: RouteLogin, Path: "/login", RedirectAlreadyLogin: true},
		Route{Name: RouteSignup, Path: "/signup", RedirectAlreadyLogin: true},
		Route{Name: RouteColumn, Path: "/column/:id"},
		Route{Name: RouteCreate, Path: "/create", RequiredLogin: true},
		Route{Name: RoutePost, Path: "/posts/:id"},
		Route{Name: RouteEdit, Path: "/posts/:id/edit", RequiredLogin: true},
	)
}

func NewRoutes(routes ...Route) Routes {
	rt := make(Routes, len(routes))
	for _, r := range routes {
		rt[r.Name] = r
	}
	return rt
}

func (rt Routes) Lookup(name string) (Route, bool) {
	r, ok := rt[name]
	return r, ok
}
