package google

import (
	"context"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.GoogleClient        = (*MockClient)(nil)
	_ driven.GoogleClientFactory = (*MockFactory)(nil)
)

// MockFactory builds MockClients regardless of the supplied credentials.
// Selected with KEYPANEL_GOOGLE_MODE=mock for local development without live
// Google credentials.
type MockFactory struct{}

// NewMockFactory creates a MockFactory.
func NewMockFactory() *MockFactory {
	return &MockFactory{}
}

// FromAPIKey returns a MockClient ignoring the key.
func (f *MockFactory) FromAPIKey(_ context.Context, _ string) (driven.GoogleClient, error) {
	return &MockClient{}, nil
}

// FromToken returns a MockClient ignoring the token.
func (f *MockFactory) FromToken(_ context.Context, _ string) (driven.GoogleClient, error) {
	return &MockClient{}, nil
}

// Canned responses, shaped like the corresponding live API payloads.
const (
	mockChannelJSON     = "{\n  \"items\": [\n    {\n      \"id\": \"mock-channel-id\",\n      \"snippet\": {\n        \"title\": \"Mock Channel\"\n      }\n    }\n  ]\n}"
	mockVideoJSON       = "{\n  \"items\": [\n    {\n      \"id\": \"mock-video-id\",\n      \"snippet\": {\n        \"title\": \"Mock Video\"\n      }\n    }\n  ]\n}"
	mockFilesJSON       = "{\n  \"files\": [\n    {\n      \"id\": \"mock-file-id\",\n      \"name\": \"Mock File\"\n    }\n  ]\n}"
	mockSpreadsheetJSON = "{\n  \"properties\": {\n    \"title\": \"Mock Spreadsheet\"\n  }\n}"
	mockValuesJSON      = "{\n  \"values\": [\n    [\"Mock\", \"Data\"]\n  ]\n}"
	mockEventsJSON      = "{\n  \"items\": [\n    {\n      \"id\": \"mock-event-id\",\n      \"summary\": \"Mock Event\"\n    }\n  ]\n}"
	mockCalendarsJSON   = "{\n  \"items\": [\n    {\n      \"id\": \"mock-calendar-id\",\n      \"summary\": \"Mock Calendar\"\n    }\n  ]\n}"
	mockProfileJSON     = "{\n  \"emailAddress\": \"mock@example.com\"\n}"
	mockWriteJSON       = "Mock response"
)

// MockClient implements the GoogleClient port with canned data. Every
// operation succeeds; write operations report success without any external
// side effect.
type MockClient struct{}

func (m *MockClient) Probe(_ context.Context, service model.Service) error {
	_, err := model.ParseService(string(service))
	return err
}

func (m *MockClient) ListOwnChannel(context.Context) (string, error) {
	return mockChannelJSON, nil
}

func (m *MockClient) GetChannel(_ context.Context, _ string) (string, error) {
	return mockChannelJSON, nil
}

func (m *MockClient) GetVideo(_ context.Context, _ string) (string, error) {
	return mockVideoJSON, nil
}

func (m *MockClient) CreatePlaylist(_ context.Context, _ string) (string, error) {
	return mockWriteJSON, nil
}

func (m *MockClient) AddPlaylistItem(_ context.Context, _, _ string) (string, error) {
	return mockWriteJSON, nil
}

func (m *MockClient) ListFiles(_ context.Context, _ string, _ int64) (string, error) {
	return mockFilesJSON, nil
}

func (m *MockClient) GetFile(_ context.Context, _ string) (string, error) {
	return mockFilesJSON, nil
}

func (m *MockClient) CreateFile(_ context.Context, _, _, _ string) (string, error) {
	return mockWriteJSON, nil
}

func (m *MockClient) GetSpreadsheet(_ context.Context, _ string) (string, error) {
	return mockSpreadsheetJSON, nil
}

func (m *MockClient) ReadRange(_ context.Context, _, _ string) (string, error) {
	return mockValuesJSON, nil
}

func (m *MockClient) AppendRow(_ context.Context, _, _ string, _ []any) (string, error) {
	return mockWriteJSON, nil
}

func (m *MockClient) ListUpcomingEvents(_ context.Context, _ int64) (string, error) {
	return mockEventsJSON, nil
}

func (m *MockClient) ListCalendars(context.Context) (string, error) {
	return mockCalendarsJSON, nil
}

func (m *MockClient) CreateEvent(_ context.Context, _ string, _ time.Time, _ time.Duration) (string, error) {
	return mockWriteJSON, nil
}

func (m *MockClient) GetProfile(context.Context) (string, error) {
	return mockProfileJSON, nil
}

func (m *MockClient) SendMessage(_ context.Context, _, _, _ string) (string, error) {
	return mockWriteJSON, nil
}

func (m *MockClient) ProjectRoles(_ context.Context, _ string) ([]string, error) {
	return []string{}, nil
}
