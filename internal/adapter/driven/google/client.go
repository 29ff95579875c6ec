// Package google implements the GoogleClient port using the Google API SDK.
package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/youtube/v3"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.GoogleClient        = (*Client)(nil)
	_ driven.GoogleClientFactory = (*Factory)(nil)
)

// Factory builds live Clients from caller-supplied credentials.
type Factory struct{}

// NewFactory creates a Factory producing clients backed by the real SDK.
func NewFactory() *Factory {
	return &Factory{}
}

// FromAPIKey builds a client authenticated with a Google Cloud API key.
// The SDK appends the key to every request.
func (f *Factory) FromAPIKey(_ context.Context, apiKey string) (driven.GoogleClient, error) {
	return &Client{opts: []option.ClientOption{option.WithAPIKey(apiKey)}}, nil
}

// FromToken builds a client that sends the given value as a bearer token,
// with the following transport stack:
//  1. httpcache (in-memory conditional request caching)
//  2. oauth2 (Authorization header from a static token source)
//  3. Google API SDK service clients
func (f *Factory) FromToken(_ context.Context, token string) (driven.GoogleClient, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   cacheTransport,
		},
	}
	return &Client{opts: []option.ClientOption{option.WithHTTPClient(httpClient)}}, nil
}

// Client implements the driven.GoogleClient port using google.golang.org/api.
// Service handles are constructed per call from the stored client options;
// construction does not perform network I/O.
type Client struct {
	opts []option.ClientOption
}

// NewClientWithHTTPClient creates a Client that routes every SDK call through
// the given http.Client and base URL. This constructor is intended for
// testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{opts: []option.ClientOption{
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(baseURL),
	}}
}

// Probe performs the lightweight authentication check for the given service
// by obtaining a service handle scoped to that service.
func (c *Client) Probe(ctx context.Context, service model.Service) error {
	var err error
	switch service {
	case model.ServiceYouTube:
		_, err = youtube.NewService(ctx, c.opts...)
	case model.ServiceDrive:
		_, err = drive.NewService(ctx, c.opts...)
	case model.ServiceSheets:
		_, err = sheets.NewService(ctx, c.opts...)
	case model.ServiceCalendar:
		_, err = calendar.NewService(ctx, c.opts...)
	case model.ServiceGmail:
		_, err = gmail.NewService(ctx, c.opts...)
	default:
		return fmt.Errorf("%w: %q", model.ErrUnsupportedService, service)
	}
	if err != nil {
		return fmt.Errorf("building %s client: %w", service, err)
	}
	return nil
}

// ListOwnChannel lists the caller's own channel (snippet part).
func (c *Client) ListOwnChannel(ctx context.Context) (string, error) {
	yt, err := youtube.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building youtube client: %w", err)
	}

	resp, err := yt.Channels.List([]string{"snippet"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing own channel: %w", err)
	}
	return indent(resp), nil
}

// GetChannel retrieves snippet and statistics for a channel by id.
func (c *Client) GetChannel(ctx context.Context, channelID string) (string, error) {
	yt, err := youtube.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building youtube client: %w", err)
	}

	resp, err := yt.Channels.List([]string{"snippet", "statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("getting channel %s: %w", channelID, err)
	}
	return indent(resp), nil
}

// GetVideo retrieves snippet and statistics for a video by id.
func (c *Client) GetVideo(ctx context.Context, videoID string) (string, error) {
	yt, err := youtube.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building youtube client: %w", err)
	}

	resp, err := yt.Videos.List([]string{"snippet", "statistics"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("getting video %s: %w", videoID, err)
	}
	return indent(resp), nil
}

// CreatePlaylist inserts a new private playlist. Not idempotent: each call
// creates another playlist.
func (c *Client) CreatePlaylist(ctx context.Context, title string) (string, error) {
	yt, err := youtube.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building youtube client: %w", err)
	}

	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{Title: title},
		Status:  &youtube.PlaylistStatus{PrivacyStatus: "private"},
	}
	resp, err := yt.Playlists.Insert([]string{"snippet", "status"}, playlist).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating playlist: %w", err)
	}
	return indent(resp), nil
}

// AddPlaylistItem adds a video to an existing playlist.
func (c *Client) AddPlaylistItem(ctx context.Context, playlistID, videoID string) (string, error) {
	yt, err := youtube.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building youtube client: %w", err)
	}

	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{Kind: "youtube#video", VideoId: videoID},
		},
	}
	resp, err := yt.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("adding video %s to playlist %s: %w", videoID, playlistID, err)
	}
	return indent(resp), nil
}

// ListFiles lists up to pageSize files with id and name fields. A non-empty
// folderID restricts the listing to that folder's children.
func (c *Client) ListFiles(ctx context.Context, folderID string, pageSize int64) (string, error) {
	drv, err := drive.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building drive client: %w", err)
	}

	call := drv.Files.List().
		PageSize(pageSize).
		Fields("nextPageToken, files(id, name)")
	if folderID != "" {
		call = call.Q(fmt.Sprintf("'%s' in parents", folderID))
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing files: %w", err)
	}
	return indent(resp), nil
}

// GetFile retrieves file metadata by id.
func (c *Client) GetFile(ctx context.Context, fileID string) (string, error) {
	drv, err := drive.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building drive client: %w", err)
	}

	resp, err := drv.Files.Get(fileID).
		Fields("id, name, mimeType, createdTime").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("getting file %s: %w", fileID, err)
	}
	return indent(resp), nil
}

// CreateFile creates a plain-text file with the given content, optionally
// parented under folderID. Not idempotent: each call creates another file.
func (c *Client) CreateFile(ctx context.Context, folderID, name, content string) (string, error) {
	drv, err := drive.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building drive client: %w", err)
	}

	file := &drive.File{Name: name, MimeType: "text/plain"}
	if folderID != "" {
		file.Parents = []string{folderID}
	}

	resp, err := drv.Files.Create(file).
		Media(strings.NewReader(content)).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating file %q: %w", name, err)
	}
	return indent(resp), nil
}

// GetSpreadsheet retrieves spreadsheet metadata by id.
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (string, error) {
	sh, err := sheets.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building sheets client: %w", err)
	}

	resp, err := sh.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("getting spreadsheet %s: %w", spreadsheetID, err)
	}
	return indent(resp), nil
}

// ReadRange reads cell values from the given range.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) (string, error) {
	sh, err := sheets.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building sheets client: %w", err)
	}

	resp, err := sh.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("reading range %s of spreadsheet %s: %w", readRange, spreadsheetID, err)
	}
	return indent(resp), nil
}

// AppendRow appends one row of values to the given range. Not idempotent:
// each call appends another row.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, appendRange string, values []any) (string, error) {
	sh, err := sheets.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building sheets client: %w", err)
	}

	body := &sheets.ValueRange{Values: [][]any{values}}
	resp, err := sh.Spreadsheets.Values.Append(spreadsheetID, appendRange, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("appending row to spreadsheet %s: %w", spreadsheetID, err)
	}
	return indent(resp), nil
}

// ListUpcomingEvents lists up to max upcoming events on the primary calendar
// ordered by start time.
func (c *Client) ListUpcomingEvents(ctx context.Context, max int64) (string, error) {
	cal, err := calendar.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building calendar client: %w", err)
	}

	resp, err := cal.Events.List("primary").
		MaxResults(max).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(time.Now().UTC().Format(time.RFC3339)).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing upcoming events: %w", err)
	}
	return indent(resp), nil
}

// ListCalendars lists the caller's calendars.
func (c *Client) ListCalendars(ctx context.Context) (string, error) {
	cal, err := calendar.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building calendar client: %w", err)
	}

	resp, err := cal.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing calendars: %w", err)
	}
	return indent(resp), nil
}

// CreateEvent inserts an event on the primary calendar starting at the given
// time. Not idempotent: each call creates another event.
func (c *Client) CreateEvent(ctx context.Context, summary string, start time.Time, duration time.Duration) (string, error) {
	cal, err := calendar.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building calendar client: %w", err)
	}

	event := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: start.Add(duration).Format(time.RFC3339)},
	}
	resp, err := cal.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating event: %w", err)
	}
	return indent(resp), nil
}

// GetProfile retrieves the caller's own Gmail profile.
func (c *Client) GetProfile(ctx context.Context) (string, error) {
	gm, err := gmail.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building gmail client: %w", err)
	}

	resp, err := gm.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("getting gmail profile: %w", err)
	}
	return indent(resp), nil
}

// SendMessage sends an email from the caller's account. The message is
// RFC 2822 formatted and base64url-encoded without padding, per the Gmail
// API contract. Not idempotent: each call sends another email.
func (c *Client) SendMessage(ctx context.Context, to, subject, body string) (string, error) {
	gm, err := gmail.NewService(ctx, c.opts...)
	if err != nil {
		return "", fmt.Errorf("building gmail client: %w", err)
	}

	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s", to, subject, body)
	msg := &gmail.Message{Raw: base64.RawURLEncoding.EncodeToString([]byte(raw))}

	resp, err := gm.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sending message to %s: %w", to, err)
	}
	return indent(resp), nil
}

// ProjectRoles lists the IAM role bindings for the given project.
func (c *Client) ProjectRoles(ctx context.Context, projectID string) ([]string, error) {
	crm, err := cloudresourcemanager.NewService(ctx, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("building cloudresourcemanager client: %w", err)
	}

	policy, err := crm.Projects.GetIamPolicy(projectID, &cloudresourcemanager.GetIamPolicyRequest{}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting IAM policy for project %s: %w", projectID, err)
	}

	roles := make([]string, 0, len(policy.Bindings))
	for _, binding := range policy.Bindings {
		roles = append(roles, binding.Role)
	}
	return roles, nil
}

// indent renders an SDK response as indented JSON for the details panel.
func indent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
