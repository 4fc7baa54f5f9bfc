// Package jobs contains the scheduled background work of the kitchen:
// periodic assignment proposal sweeps and consistency audits of active
// production. Jobs drive the same query handlers the HTTP surface uses and
// never bypass the application layer.
package jobs
