// Package ports defines the contracts between the dispatch core and its adapters:
// repositories and the unit of work, the read-only fleet snapshot, event
// publishing and the external oracles.
package ports
