// Package store provides local persistence for drafts, preferences, and credentials.
//
// All values live in a single SQLite-backed key/value table, JSON-encoded, with
// optional per-key expiry. The layout mirrors the studio web app's per-browser
// storage so the CLI and web app stay interchangeable on the same account:
//
//   - "user-settings"                → list-size preferences
//   - "song-form-draft"              → last unsaved song generation form
//   - "image-form-draft"             → last unsaved image generation form
//   - "lyric-architecture-config"    → composer section layout (owned by composer)
//   - "music-style-chooser-config"   → composer style choices (owned by composer)
//   - "auth-token" / "auth-user"     → credentials, fixed 1-day expiry
//
// There is no schema versioning; loads of corrupt or missing values fall back
// to fixed defaults.
package store
