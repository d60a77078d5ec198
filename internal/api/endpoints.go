package api

import (
	"fmt"
	"net/url"
)

// Song endpoints.

func SongGenerate() string { return "/api/songs/generate" }
func SongStatus(taskID string) string { return "/api/songs/status/" + url.PathEscape(taskID) }
func SongDetail(id string) string { return "/api/songs/" + url.PathEscape(id) }
func SongUpdate(id string) string { return SongDetail(id) }
func SongStems(id string) string { return SongDetail(id) + "/stems" }
func SongRating(id string) string { return SongDetail(id) + "/rating" }

// SongList returns the paginated song listing path.
func SongList(limit, offset int) string {
	return fmt.Sprintf("/api/songs?limit=%d&offset=%d", limit, offset)
}

// Image endpoints.

func ImageGenerate() string { return "/api/images/generate" }
func ImageStatus(taskID string) string { return "/api/images/status/" + url.PathEscape(taskID) }
func ImageDetail(id string) string { return "/api/images/" + url.PathEscape(id) }
func ImageUpdate(id string) string { return ImageDetail(id) }
func ImageBulkDelete() string { return "/api/images/bulk-delete" }

// ImageList returns the paginated image listing path.
func ImageList(limit, offset int) string {
	return fmt.Sprintf("/api/images?limit=%d&offset=%d", limit, offset)
}

// Prompt template endpoints.

func TemplateList() string { return "/api/templates" }
func TemplateCategory(cat string) string { return "/api/templates/category/" + url.PathEscape(cat) }
func TemplateDetail(id string) string { return "/api/templates/" + url.PathEscape(id) }
func TemplateUpdate(id string) string { return TemplateDetail(id) }

// Chat/LLM helper endpoints.

func ChatEnhance() string { return "/api/chat/enhance" }
func ChatTranslate() string { return "/api/chat/translate" }
func ChatTitle() string { return "/api/chat/generate-title" }
func ChatLyrics() string { return "/api/chat/generate-lyrics" }

// Billing and diagnostics.

func BillingInfo() string { return "/api/billing/info" }
func TaskList() string { return "/api/tasks" }
func TaskDelete(taskID string) string { return "/api/tasks/" + url.PathEscape(taskID) }

// Auth endpoints.

func AuthLogin() string { return "/api/auth/login" }
func AuthSignup() string { return "/api/auth/signup" }
func AuthLogout() string { return "/api/auth/logout" }
func AuthValidate() string { return "/api/auth/validate" }

// publicPaths is the fixed allow-list of endpoints that never carry credentials.
var publicPaths = map[string]bool{
	AuthLogin():    true,
	AuthSignup():   true,
	AuthValidate(): true,
}

// IsPublic reports whether the path is served without authentication.
func IsPublic(path string) bool {
	return publicPaths[path]
}
