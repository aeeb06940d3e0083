// Package vcs provides the version-control domain: provider push events,
// webhook-linked repository configuration, and push-event provenance carried
// onto tasks and activities.
package vcs

import "time"

// EventKindPush is the only webhook event kind this service is provisioned
// to receive.
const EventKindPush = "push"

// PushEvent is the provider-delivered push notification. The shape follows
// the GitLab push payload; it is externally supplied and never persisted.
type PushEvent struct {
	ObjectKind string         `json:"object_kind"`
	Ref        string         `json:"ref"`
	AuthorName string         `json:"user_name"`
	Project    ProjectPayload `json:"project"`
	Commits    []Commit       `json:"commits"`
}

// ProjectPayload identifies the provider-side project a push belongs to.
type ProjectPayload struct {
	ID       int64  `json:"id"`
	WebURL   string `json:"web_url"`
	FullPath string `json:"path_with_namespace"`
}

// Commit is one commit in a push event, including the file paths it added.
type Commit struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Timestamp string       `json:"timestamp"`
	URL       string       `json:"url"`
	Author    CommitAuthor `json:"author"`
	Added     []string     `json:"added"`
}

// CommitAuthor is the commit author as reported by the provider.
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreatedTime parses the commit timestamp. Providers send RFC3339; a
// malformed timestamp yields the zero time and is not a reason to reject
// the commit.
func (c Commit) CreatedTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Timestamp)
}

// PushDetail is the provenance of one (commit, added file) pair. It travels
// on tasks and activities so every issue can be traced back to the exact
// push that produced it.
type PushDetail struct {
	VCSType            Provider   `json:"vcsType"`
	BaseDirectory      string     `json:"baseDirectory"`
	Ref                string     `json:"ref"`
	RepositoryID       string     `json:"repositoryId"`
	RepositoryURL      string     `json:"repositoryUrl"`
	RepositoryFullPath string     `json:"repositoryFullPath"`
	AuthorName         string     `json:"authorName"`
	FileCommit         FileCommit `json:"fileCommit"`
}

// FileCommit pins a single added file to the commit that introduced it.
type FileCommit struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	CreatedTs  int64  `json:"createdTs"`
	URL        string `json:"url"`
	AuthorName string `json:"authorName"`
	Added      string `json:"added"`
}
