// Package middleware provides net/http adapters over the engine. Guard
// applies the route guard to each request: allowed requests pass through
// with the resolved session on the context, denied ones get a see-other
// redirect to the decision's target.
package middleware
