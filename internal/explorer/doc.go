// Package explorer walks a root URL and its same-domain neighborhood
// to a bounded depth. It owns the visited set, the fan-out of child
// fetches, the global deadline, and the assembly of the exploration
// result.
package explorer
