// Package api implements the HTTP client for the studio backend.
//
// It has three layers:
//
//  1. Endpoint resolution: logical endpoint helpers ([SongGenerate],
//     [TemplateDetail], ...) map resource operations to paths, joined against
//     the configured base URL by [Client].
//  2. Transport chain: two ordered [net/http.RoundTripper] stages. The auth
//     stage attaches the bearer token (skipping a fixed allow-list of public
//     endpoints), revalidates once through the [Authority] on 401 and retries,
//     and forces logout on 403. The notify stage turns any other >=400
//     response into an extracted message pushed to the notification sink,
//     leaving the response for the caller.
//  3. [Client]: JSON request helpers plus a raw passthrough for diagnostics.
//
// Error bodies from the backend come in several shapes; [Extract] normalizes
// all of them into one user-facing string.
package api
