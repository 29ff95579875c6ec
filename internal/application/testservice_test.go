package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

type stubGoogleClient struct {
	probeErr error
	callErr  error
	roles    []string
	rolesErr error

	calls []string
}

func (c *stubGoogleClient) call(name string) (string, error) {
	c.calls = append(c.calls, name)
	if c.callErr != nil {
		return "", c.callErr
	}
	return `{"stub": "` + name + `"}`, nil
}

func (c *stubGoogleClient) Probe(_ context.Context, _ model.Service) error { return c.probeErr }

func (c *stubGoogleClient) ListOwnChannel(context.Context) (string, error) {
	return c.call("ListOwnChannel")
}
func (c *stubGoogleClient) GetChannel(_ context.Context, _ string) (string, error) {
	return c.call("GetChannel")
}
func (c *stubGoogleClient) GetVideo(_ context.Context, _ string) (string, error) {
	return c.call("GetVideo")
}
func (c *stubGoogleClient) CreatePlaylist(_ context.Context, _ string) (string, error) {
	return c.call("CreatePlaylist")
}
func (c *stubGoogleClient) AddPlaylistItem(_ context.Context, _, _ string) (string, error) {
	return c.call("AddPlaylistItem")
}
func (c *stubGoogleClient) ListFiles(_ context.Context, _ string, _ int64) (string, error) {
	return c.call("ListFiles")
}
func (c *stubGoogleClient) GetFile(_ context.Context, _ string) (string, error) {
	return c.call("GetFile")
}
func (c *stubGoogleClient) CreateFile(_ context.Context, _, _, _ string) (string, error) {
	return c.call("CreateFile")
}
func (c *stubGoogleClient) GetSpreadsheet(_ context.Context, _ string) (string, error) {
	return c.call("GetSpreadsheet")
}
func (c *stubGoogleClient) ReadRange(_ context.Context, _, _ string) (string, error) {
	return c.call("ReadRange")
}
func (c *stubGoogleClient) AppendRow(_ context.Context, _, _ string, _ []any) (string, error) {
	return c.call("AppendRow")
}
func (c *stubGoogleClient) ListUpcomingEvents(_ context.Context, _ int64) (string, error) {
	return c.call("ListUpcomingEvents")
}
func (c *stubGoogleClient) ListCalendars(context.Context) (string, error) {
	return c.call("ListCalendars")
}
func (c *stubGoogleClient) CreateEvent(_ context.Context, _ string, _ time.Time, _ time.Duration) (string, error) {
	return c.call("CreateEvent")
}
func (c *stubGoogleClient) GetProfile(context.Context) (string, error) {
	return c.call("GetProfile")
}
func (c *stubGoogleClient) SendMessage(_ context.Context, _, _, _ string) (string, error) {
	return c.call("SendMessage")
}
func (c *stubGoogleClient) ProjectRoles(_ context.Context, _ string) ([]string, error) {
	c.calls = append(c.calls, "ProjectRoles")
	return c.roles, c.rolesErr
}

type stubFactory struct {
	client *stubGoogleClient
}

func (f *stubFactory) FromAPIKey(_ context.Context, _ string) (driven.GoogleClient, error) {
	return f.client, nil
}

func (f *stubFactory) FromToken(_ context.Context, _ string) (driven.GoogleClient, error) {
	return f.client, nil
}

type memResultStore struct {
	records []model.TestResult
}

func (s *memResultStore) Append(_ context.Context, rec model.TestResult) (model.TestResult, error) {
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *memResultStore) ListRecent(_ context.Context, limit int) ([]model.TestResult, error) {
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

type memErrorLogStore struct {
	records []model.ErrorLog
}

func (s *memErrorLogStore) Append(_ context.Context, rec model.ErrorLog) (model.ErrorLog, error) {
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *memErrorLogStore) ListRecent(_ context.Context, limit int) ([]model.ErrorLog, error) {
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

type testFixture struct {
	svc     *TestService
	client  *stubGoogleClient
	results *memResultStore
	errlog  *memErrorLogStore
	bucket  *TokenBucket
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	client := &stubGoogleClient{}
	results := &memResultStore{}
	errlog := &memErrorLogStore{}
	bucket := NewTokenBucket(5, time.Minute)
	svc := NewTestService(
		&stubFactory{client: client},
		results,
		errlog,
		bucket,
		"test-spreadsheet",
		"test@example.com",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return &testFixture{svc: svc, client: client, results: results, errlog: errlog, bucket: bucket}
}

func TestRunGoogleTestReadOnly(t *testing.T) {
	f := newTestFixture(t)

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:   "AIzaSyTest",
		Service:  model.ServiceYouTube,
		TestType: model.TestTypeRead,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "Authentication successful", report.Results[0].Message)
	assert.True(t, report.Results[1].Success)
	assert.Equal(t, "Successfully retrieved YouTube channel data", report.Results[1].Message)
	assert.Equal(t, []string{"ListOwnChannel"}, f.client.calls)
}

func TestRunGoogleTestWriteOnlyRunsWrite(t *testing.T) {
	f := newTestFixture(t)

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:   "AIzaSyTest",
		Service:  model.ServiceDrive,
		TestType: model.TestTypeWrite,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "Authentication successful", report.Results[0].Message)
	assert.Equal(t, "Successfully created a file in Google Drive", report.Results[1].Message)
	assert.NotContains(t, f.client.calls, "ListFiles")
}

func TestRunGoogleTestAuthTypeSkipsWrites(t *testing.T) {
	f := newTestFixture(t)

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:   "AIzaSyTest",
		Service:  model.ServiceGmail,
		TestType: model.TestTypeAuth,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "Successfully retrieved Gmail messages", report.Results[1].Message)
	assert.NotContains(t, f.client.calls, "SendMessage")
}

func TestRunGoogleTestAuthFailure(t *testing.T) {
	f := newTestFixture(t)
	f.client.probeErr = errors.New("invalid api key")

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:   "bogus",
		Service:  model.ServiceSheets,
		TestType: model.TestTypeWrite,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Success)
	assert.Equal(t, "Authentication failed", report.Results[0].Message)
	assert.Empty(t, f.client.calls, "no sub-test should run after a failed probe")

	require.Len(t, f.results.records, 1)
	require.Len(t, f.errlog.records, 1)
	assert.Equal(t, "Authentication failed", f.errlog.records[0].Error)
}

func TestRunGoogleTestSubTestFailureDoesNotAbort(t *testing.T) {
	f := newTestFixture(t)
	f.client.callErr = errors.New("insufficient permissions")

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:   "AIzaSyTest",
		Service:  model.ServiceCalendar,
		TestType: model.TestTypeWrite,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Success, "auth outcome survives the sub-test failure")
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, "Failed to create a Google Calendar event", report.Results[1].Message)
	require.Len(t, f.errlog.records, 1)
	assert.Equal(t, "Calendar", f.errlog.records[0].Service)
}

func TestRunGoogleTestPersistsOutcomes(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:   "AIzaSyTest",
		Service:  model.ServiceYouTube,
		TestType: model.TestTypeWrite,
	})
	require.NoError(t, err)

	require.Len(t, f.results.records, 2)
	assert.Equal(t, "YouTube", f.results.records[0].Service)
	assert.Empty(t, f.errlog.records)
}

func TestRunGoogleTestPermissionsBestEffort(t *testing.T) {
	f := newTestFixture(t)
	f.client.rolesErr = errors.New("cloudresourcemanager disabled")

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:    "AIzaSyTest",
		ProjectID: "my-project",
		Service:   model.ServiceYouTube,
		TestType:  model.TestTypeRead,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{}, report.Permissions)
	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[1].Success)
}

func TestRunGoogleTestPermissionsReturned(t *testing.T) {
	f := newTestFixture(t)
	f.client.roles = []string{"roles/owner", "roles/viewer"}

	report, err := f.svc.RunGoogleTest(context.Background(), GoogleTestRequest{
		APIKey:    "AIzaSyTest",
		ProjectID: "my-project",
		Service:   model.ServiceYouTube,
		TestType:  model.TestTypeRead,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"roles/owner", "roles/viewer"}, report.Permissions)
}

func TestRunGoogleTestRateLimited(t *testing.T) {
	f := newTestFixture(t)
	req := GoogleTestRequest{APIKey: "AIzaSyTest", Service: model.ServiceYouTube, TestType: model.TestTypeAuth}

	for i := 0; i < 5; i++ {
		_, err := f.svc.RunGoogleTest(context.Background(), req)
		require.NoError(t, err)
	}

	_, err := f.svc.RunGoogleTest(context.Background(), req)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCheckPermissionsSurfacesErrors(t *testing.T) {
	f := newTestFixture(t)
	f.client.rolesErr = errors.New("permission denied")

	_, err := f.svc.CheckPermissions(context.Background(), "AIzaSyTest", "my-project")
	assert.ErrorContains(t, err, "permission denied")
}

func TestRunYouTubeTestTargets(t *testing.T) {
	tests := []struct {
		name     string
		req      YouTubeTestRequest
		wantCall string
	}{
		{
			name:     "video id wins",
			req:      YouTubeTestRequest{APIKey: "k", TestType: model.TestTypeRead, VideoID: "v1", ChannelID: "c1"},
			wantCall: "GetVideo",
		},
		{
			name:     "channel id",
			req:      YouTubeTestRequest{APIKey: "k", TestType: model.TestTypeRead, ChannelID: "c1"},
			wantCall: "GetChannel",
		},
		{
			name:     "own channel fallback",
			req:      YouTubeTestRequest{APIKey: "k", TestType: model.TestTypeRead},
			wantCall: "ListOwnChannel",
		},
		{
			name:     "write to playlist",
			req:      YouTubeTestRequest{APIKey: "k", TestType: model.TestTypeWrite, PlaylistID: "p1", VideoID: "v1"},
			wantCall: "AddPlaylistItem",
		},
		{
			name:     "write without playlist creates one",
			req:      YouTubeTestRequest{APIKey: "k", TestType: model.TestTypeWrite},
			wantCall: "CreatePlaylist",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFixture(t)

			outcome, err := f.svc.RunYouTubeTest(context.Background(), tc.req)
			require.NoError(t, err)
			assert.True(t, outcome.Success)
			assert.Equal(t, []string{tc.wantCall}, f.client.calls)
		})
	}
}

func TestRunYouTubeTestFailureRecorded(t *testing.T) {
	f := newTestFixture(t)
	f.client.callErr = errors.New("quota exceeded")

	outcome, err := f.svc.RunYouTubeTest(context.Background(), YouTubeTestRequest{
		APIKey:   "k",
		TestType: model.TestTypeRead,
	})
	require.NoError(t, err)

	assert.False(t, outcome.Success)
	assert.Equal(t, "API test failed", outcome.Message)
	require.Len(t, f.errlog.records, 1)
	assert.Equal(t, "YouTube", f.errlog.records[0].Service)
}

func TestRunDriveTestTargets(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.svc.RunDriveTest(context.Background(), DriveTestRequest{
		APIKey:   "k",
		TestType: model.TestTypeRead,
		FileID:   "f1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"GetFile"}, f.client.calls)

	f = newTestFixture(t)
	_, err = f.svc.RunDriveTest(context.Background(), DriveTestRequest{
		APIKey:   "k",
		TestType: model.TestTypeWrite,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CreateFile"}, f.client.calls)
}

func TestRunSheetsTestTargets(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.svc.RunSheetsTest(context.Background(), SheetsTestRequest{
		APIKey:        "k",
		TestType:      model.TestTypeRead,
		SpreadsheetID: "s1",
		Range:         "Sheet1!A1:B2",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ReadRange"}, f.client.calls)

	f = newTestFixture(t)
	_, err = f.svc.RunSheetsTest(context.Background(), SheetsTestRequest{
		APIKey:   "k",
		TestType: model.TestTypeWrite,
		Values:   "a, b, c",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"AppendRow"}, f.client.calls)
}

func TestSplitValues(t *testing.T) {
	assert.Nil(t, splitValues("  "))
	assert.Equal(t, []any{"a", "b", "c"}, splitValues("a, b ,c"))
}
