package driven

import (
	"context"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// GoogleClient is the capability interface over the Google API SDK. One
// method per external operation; each returns the raw response rendered as
// indented JSON for the details panel, plus an error. Write operations are
// NOT idempotent: every call creates a new playlist, file, row, event, or
// email on the live implementation.
type GoogleClient interface {
	// Probe performs the lightweight authentication check for the given
	// service: obtaining a service handle scoped to that service's OAuth scope.
	Probe(ctx context.Context, service model.Service) error

	// YouTube.
	ListOwnChannel(ctx context.Context) (string, error)
	GetChannel(ctx context.Context, channelID string) (string, error)
	GetVideo(ctx context.Context, videoID string) (string, error)
	CreatePlaylist(ctx context.Context, title string) (string, error)
	AddPlaylistItem(ctx context.Context, playlistID, videoID string) (string, error)

	// Drive. An empty folderID targets the whole drive.
	ListFiles(ctx context.Context, folderID string, pageSize int64) (string, error)
	GetFile(ctx context.Context, fileID string) (string, error)
	CreateFile(ctx context.Context, folderID, name, content string) (string, error)

	// Sheets.
	GetSpreadsheet(ctx context.Context, spreadsheetID string) (string, error)
	ReadRange(ctx context.Context, spreadsheetID, readRange string) (string, error)
	AppendRow(ctx context.Context, spreadsheetID, appendRange string, values []any) (string, error)

	// Calendar.
	ListUpcomingEvents(ctx context.Context, max int64) (string, error)
	ListCalendars(ctx context.Context) (string, error)
	CreateEvent(ctx context.Context, summary string, start time.Time, duration time.Duration) (string, error)

	// Gmail.
	GetProfile(ctx context.Context) (string, error)
	SendMessage(ctx context.Context, to, subject, body string) (string, error)

	// ProjectRoles lists the IAM role bindings for the given project.
	ProjectRoles(ctx context.Context, projectID string) ([]string, error)
}

// GoogleClientFactory builds GoogleClient instances from caller-supplied
// credentials. Clients are constructed per request; nothing is cached across
// requests except whatever the underlying transport caches.
type GoogleClientFactory interface {
	// FromAPIKey builds a client authenticated with a Google Cloud API key.
	FromAPIKey(ctx context.Context, apiKey string) (GoogleClient, error)

	// FromToken builds a client that sends the given value as a bearer token.
	FromToken(ctx context.Context, token string) (GoogleClient, error)
}
