package hypermedia

import (
	"fmt"
	"strings"
)

// Named routes. Controls are built from this table instead of handler
// identity, which keeps hypermedia assembly decoupled from the router; the
// route setup uses the same templates, so a control href can never drift
// from the registered path.
const (
	RouteCourseCollection = "trainingcourse-collection"
	RouteCourseItem       = "trainingcourse-item"
	RouteCourseMedias     = "coursemedia-collection"
	RouteCourseUsers      = "courseuser-collection"
	RouteMediaItem        = "coursemedia-item"
	RouteUserCollection   = "user-collection"
	RouteUserItem         = "user-item"
	RouteLinkRelations    = "link-relations"
)

var routeTable = map[string]string{
	RouteCourseCollection: "/api/trainingcourses/",
	RouteCourseItem:       "/api/trainingcourses/:id/",
	RouteCourseMedias:     "/api/trainingcourses/:id/medias/",
	RouteCourseUsers:      "/api/trainingcourses/:id/users/",
	RouteMediaItem:        "/api/coursemedia/:id/",
	RouteUserCollection:   "/api/users/",
	RouteUserItem:         "/api/users/:id/",
	RouteLinkRelations:    "/trainingmanager/link-relations/",
}

// lookup panics on a name missing from the table. Controls and route
// registration both resolve through here, so a bad name is a programmer
// error that must not surface as an empty href or an empty route path.
func lookup(name string) string {
	path, ok := routeTable[name]
	if !ok {
		panic("hypermedia: unknown route name " + name)
	}
	return path
}

// Template returns the path template for a named route, with its ":param"
// placeholders intact, suitable for route registration.
func Template(name string) string {
	return lookup(name)
}

// Href resolves a named route into a concrete URL. Parameters are given as
// name/value pairs: Href(RouteCourseItem, "id", course.ID).
func Href(name string, pairs ...interface{}) string {
	path := lookup(name)
	for i := 0; i+1 < len(pairs); i += 2 {
		placeholder := fmt.Sprintf(":%v", pairs[i])
		path = strings.Replace(path, placeholder, fmt.Sprintf("%v", pairs[i+1]), 1)
	}
	return path
}
