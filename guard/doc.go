// Package guard is the single route-access authority for every portal
// surface. Resolve is a pure function from path and session to a decision;
// the same rule set serves every shell, so access logic never drifts
// between layouts.
//
// The guard decides where someone may navigate, never what they may do
// once there. Partner verification gates portal content separately.
package guard
