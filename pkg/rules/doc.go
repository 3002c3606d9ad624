// Package rules provides the routing rule set that decides, per source path,
// whether an entry is ignored, copied through untouched, or handed to type
// dispatch.
//
// # Matching
//
// Ignore and passthrough entries are matched by exact path, never by glob or
// prefix. A directory listed as passthrough is copied wholesale, so its
// descendants never reach the rule set. Relative entries are resolved against
// the source root:
//
//	[build]
//	source = "site"
//	ignore = ["README.md", "nginx.conf"]   # site/README.md, site/nginx.conf
//	passthrough = ["lib"]                  # site/lib, copied verbatim
//
// # Hidden entries
//
// With skip-hidden enabled, any entry whose name begins with "." is left out
// of the build together with everything below it.
package rules
