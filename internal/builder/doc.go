// Package builder renders the objects managed for Gerrit clusters.
//
// Every function is a pure mapping from a primary resource and the operator
// configuration to a desired object. Ownership labels and references are
// stamped by the workflow executor, not here.
package builder
