// Package wikicrawl crawls an online encyclopedia breadth-first from a set of
// seed pages, extracts readable article text, and writes each page to a
// numbered text file until a configured file count is reached. A persisted
// ledger of visited pages makes interrupted runs resumable.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package wikicrawl
