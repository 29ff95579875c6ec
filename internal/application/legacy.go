package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// The per-service endpoints below predate the unified dispatcher. They accept
// resource identifiers so a caller can point a test at their own channel,
// file, or spreadsheet instead of the fixed fixtures.

// YouTubeTestRequest targets specific YouTube resources. Empty identifiers
// fall back to the caller's own channel.
type YouTubeTestRequest struct {
	APIKey     string
	TestType   model.TestType
	ChannelID  string
	VideoID    string
	PlaylistID string
}

// DriveTestRequest targets specific Drive resources. FolderID scopes the
// read listing and parents the written file.
type DriveTestRequest struct {
	APIKey   string
	TestType model.TestType
	FolderID string
	FileID   string
	FileName string
	Content  string
}

// SheetsTestRequest targets a specific spreadsheet. Values is the raw
// comma-separated cell list for the write test.
type SheetsTestRequest struct {
	APIKey        string
	TestType      model.TestType
	SpreadsheetID string
	Range         string
	Values        string
}

// RunYouTubeTest runs a targeted YouTube read or write. A read prefers the
// most specific identifier given: video, then channel, then own channel.
func (s *TestService) RunYouTubeTest(ctx context.Context, req YouTubeTestRequest) (model.Outcome, error) {
	run := func(ctx context.Context, client clientCaller) (string, string, error) {
		if req.TestType == model.TestTypeWrite {
			if req.PlaylistID != "" {
				details, err := client.AddPlaylistItem(ctx, req.PlaylistID, req.VideoID)
				return "Successfully added video to playlist", details, err
			}
			details, err := client.CreatePlaylist(ctx, testPlaylistTitle)
			return "Successfully created a YouTube playlist", details, err
		}
		switch {
		case req.VideoID != "":
			details, err := client.GetVideo(ctx, req.VideoID)
			return "Successfully retrieved video data", details, err
		case req.ChannelID != "":
			details, err := client.GetChannel(ctx, req.ChannelID)
			return "Successfully retrieved channel data", details, err
		default:
			details, err := client.ListOwnChannel(ctx)
			return "Successfully retrieved channel data", details, err
		}
	}
	return s.runTargeted(ctx, "YouTube", req.APIKey, run)
}

// RunDriveTest runs a targeted Drive read or write.
func (s *TestService) RunDriveTest(ctx context.Context, req DriveTestRequest) (model.Outcome, error) {
	run := func(ctx context.Context, client clientCaller) (string, string, error) {
		if req.TestType == model.TestTypeWrite {
			name := req.FileName
			if name == "" {
				name = testFileName
			}
			content := req.Content
			if content == "" {
				content = testFileContent
			}
			details, err := client.CreateFile(ctx, req.FolderID, name, content)
			return "Successfully created a file in Google Drive", details, err
		}
		if req.FileID != "" {
			details, err := client.GetFile(ctx, req.FileID)
			return "Successfully retrieved file data", details, err
		}
		details, err := client.ListFiles(ctx, req.FolderID, 10)
		return "Successfully retrieved Google Drive files", details, err
	}
	return s.runTargeted(ctx, "Google Drive", req.APIKey, run)
}

// RunSheetsTest runs a targeted Sheets read or write against the caller's
// spreadsheet, defaulting to the configured test spreadsheet.
func (s *TestService) RunSheetsTest(ctx context.Context, req SheetsTestRequest) (model.Outcome, error) {
	spreadsheetID := req.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = s.spreadsheetID
	}

	run := func(ctx context.Context, client clientCaller) (string, string, error) {
		if req.TestType == model.TestTypeWrite {
			row := splitValues(req.Values)
			if len(row) == 0 {
				row = []any{"Test", "Data", time.Now().UTC().Format(time.RFC3339)}
			}
			appendRange := req.Range
			if appendRange == "" {
				appendRange = "A1"
			}
			details, err := client.AppendRow(ctx, spreadsheetID, appendRange, row)
			return "Successfully appended data to Google Sheets", details, err
		}
		if req.Range != "" {
			details, err := client.ReadRange(ctx, spreadsheetID, req.Range)
			return "Successfully retrieved Google Sheets data", details, err
		}
		details, err := client.GetSpreadsheet(ctx, spreadsheetID)
		return "Successfully retrieved Google Sheets data", details, err
	}
	return s.runTargeted(ctx, "Google Sheets", req.APIKey, run)
}

// clientCaller narrows the client surface the targeted runners need.
type clientCaller interface {
	ListOwnChannel(ctx context.Context) (string, error)
	GetChannel(ctx context.Context, channelID string) (string, error)
	GetVideo(ctx context.Context, videoID string) (string, error)
	CreatePlaylist(ctx context.Context, title string) (string, error)
	AddPlaylistItem(ctx context.Context, playlistID, videoID string) (string, error)
	ListFiles(ctx context.Context, folderID string, pageSize int64) (string, error)
	GetFile(ctx context.Context, fileID string) (string, error)
	CreateFile(ctx context.Context, folderID, name, content string) (string, error)
	GetSpreadsheet(ctx context.Context, spreadsheetID string) (string, error)
	ReadRange(ctx context.Context, spreadsheetID, readRange string) (string, error)
	AppendRow(ctx context.Context, spreadsheetID, appendRange string, row []any) (string, error)
}

func (s *TestService) runTargeted(
	ctx context.Context,
	service string,
	apiKey string,
	run func(ctx context.Context, client clientCaller) (string, string, error),
) (model.Outcome, error) {
	if !s.bucket.TryAcquire() {
		return model.Outcome{}, ErrRateLimited
	}

	client, err := s.factory.FromAPIKey(ctx, apiKey)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("building google client: %w", err)
	}

	var outcome model.Outcome
	message, details, err := run(ctx, client)
	if err != nil {
		outcome = model.Fail("API test failed", err)
	} else {
		outcome = model.OK(message, details)
	}

	s.record(ctx, service, outcome)
	return outcome, nil
}

func splitValues(raw string) []any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	row := make([]any, 0, len(parts))
	for _, p := range parts {
		row = append(row, strings.TrimSpace(p))
	}
	return row
}
