// Package leadscout discovers public web pages that mention a company,
// extracts person names from those pages using LLM services, and streams
// the resulting leads to a durable CSV file and to an interactive caller.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, jina/, fs/), and the
// pipeline orchestration lives in pipeline/.
package leadscout
