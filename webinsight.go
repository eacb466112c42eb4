// Package webinsight provides a web page analysis service. It fetches a
// page, extracts the main readable content through a cascade of heuristics,
// and forwards that content to an LLM backend for summarization or deeper
// analysis.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, perplexity/, http/).
package webinsight
