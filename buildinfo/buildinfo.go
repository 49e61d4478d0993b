// Package buildinfo holds the two optional compile-time strings the
// uploader collaborator needs. Both are empty by default; a release build
// sets them via -ldflags -X, the same mechanism version string injection
// commonly uses.
//
//	go build -ldflags "-X github.com/example/ipfan/buildinfo.UploadURL=https://... -X github.com/example/ipfan/buildinfo.UploadSecret=..."
package buildinfo

// UploadURL is the base URL the result uploader posts transcripts to.
// Empty disables the uploader.
var UploadURL string

// UploadSecret authorizes upload requests. Empty disables the uploader.
var UploadSecret string

// Version is the module's release version, also normally set via -ldflags.
var Version = "dev"

// UploadEnabled reports whether both baked-in upload settings are present.
func UploadEnabled() bool {
	return UploadURL != "" && UploadSecret != ""
}
