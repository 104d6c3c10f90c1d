package net64update

// Repository identifies a release feed on its source: an "owner/repo" slug
// for most forges, or a numeric project ID for GitLab.
type Repository interface {
	GetSlug() (string, string, error)
	Get() (interface{}, error)
}
