// Package doodlepoll implements the doodle poll widget inside the
// community-scheduling context.
//
// The module owns the named vote lifecycle (cast/update/withdraw) for a poll
// identified by its title, persistence of the whole vote set as one blob per
// poll, deterministic voter ordering, and the tally projection handed to a
// renderer. Storage backends sit behind the BlobStore port.
package doodlepoll
