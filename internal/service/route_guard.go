package service

import (
	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
)

// routeRequirement is what a route demands of the visiting session.
type routeRequirement int

const (
	requirePublic routeRequirement = iota
	requireAuthenticated
)

// TableRouteGuard implements ports.RouteGuard from a declarative
// route table. Unknown routes are public; only routes listed as
// requireAuthenticated are protected.
type TableRouteGuard struct {
	table      map[string]routeRequirement
	loginRoute string
}

// NewRouteGuard builds the guard with the application's route table.
func NewRouteGuard() *TableRouteGuard {
	return &TableRouteGuard{
		table: map[string]routeRequirement{
			domain.RouteHome:        requirePublic,
			domain.RouteMarketplace: requirePublic,
			domain.RouteLogin:       requirePublic,
			domain.RouteProfile:     requireAuthenticated,
		},
		loginRoute: domain.RouteLogin,
	}
}

// CanEnter decides whether the session may enter the route. Denials
// redirect to the login route and carry no error detail.
func (g *TableRouteGuard) CanEnter(route string, session *domain.Session) ports.GuardDecision {
	requirement, ok := g.table[route]
	if !ok {
		requirement = requirePublic
	}

	if requirement == requireAuthenticated && !session.Authenticated() {
		return ports.GuardDecision{Allow: false, RedirectTo: g.loginRoute}
	}
	return ports.GuardDecision{Allow: true}
}
