// Package pagecap extracts structured data (articles, video frames, and
// time-coded subtitles) from third-party platform pages driven through a
// browser-automation host. Platform-specific extraction logic lives behind
// a shared adapter contract; a registry resolves the adapter for a page URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package pagecap
