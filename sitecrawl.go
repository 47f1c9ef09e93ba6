// Package sitecrawl provides a same-domain, breadth-first web crawler.
// Starting from a seed URL it discovers, fetches, and records pages
// reachable through hyperlinks, bounded by a configurable depth and
// filtered to the seed's keyword neighborhood.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, robotstxt/).
package sitecrawl
