// Package models defines domain entities and wire types for the mstro studio client.
//
// The package contains two categories of types:
//
// 1. Wire types: shapes returned by the studio backend
//   - [GenerateResponse] : job handle returned by generation submissions
//   - [JobState] : status polling payload with progress and result
//   - [Page] : generic paginated list envelope
//
// 2. Domain entities: validated records rendered by the CLI and TUI
//   - [Song] : generated song with lyrics, style, and media URLs
//   - [Image] : generated image
//   - [PromptTemplate] : server-stored prompt template
//   - [User] : authenticated account
//   - [BillingInfo] : account credit summary
//   - [TaskInfo] : diagnostic task-registry row
//
// Entities are validated at the service boundary so malformed backend payloads
// never propagate into presentation code.
package models
