package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Fixed content used by the write probes.
const (
	testPlaylistTitle = "API Test Playlist"
	testFileName      = "api-test.txt"
	testFileContent   = "This file was created by an API write test."
	testEventSummary  = "API Test Event"
	testEmailSubject  = "API Test"
	testEmailBody     = "This is a test email sent by an API write test."
)

// GoogleTestRequest is the validated input of the dispatcher.
type GoogleTestRequest struct {
	APIKey    string
	ProjectID string
	Service   model.Service
	TestType  model.TestType
}

// TestReport is the dispatcher output: one outcome per sub-test attempted,
// plus the best-effort permissions list.
type TestReport struct {
	Results     []model.Outcome
	Permissions []string
}

// TestService is the API test dispatcher: it maps (service, testType) to the
// corresponding external calls and records normalized outcomes.
type TestService struct {
	factory driven.GoogleClientFactory
	results driven.ResultStore
	errlog  driven.ErrorLogStore
	bucket  *TokenBucket
	logger  *slog.Logger

	spreadsheetID string // fixed test spreadsheet for the sheets probes
	testEmail     string // fixed recipient for the gmail write probe
}

// NewTestService creates a TestService with all required dependencies. The
// bucket is shared with every other externally-facing test endpoint.
func NewTestService(
	factory driven.GoogleClientFactory,
	results driven.ResultStore,
	errlog driven.ErrorLogStore,
	bucket *TokenBucket,
	spreadsheetID string,
	testEmail string,
	logger *slog.Logger,
) *TestService {
	return &TestService{
		factory:       factory,
		results:       results,
		errlog:        errlog,
		bucket:        bucket,
		logger:        logger,
		spreadsheetID: spreadsheetID,
		testEmail:     testEmail,
	}
}

// RunGoogleTest executes the test suite for one service. Write test types are
// NOT idempotent: each run creates a new playlist, file, row, event, or email
// against the live client.
//
// A failed authentication probe produces exactly one failure outcome and no
// service-specific sub-test executes. A failure in one sub-test does not
// abort its siblings. The permissions lookup is best-effort and collapses to
// an empty list on any failure.
func (s *TestService) RunGoogleTest(ctx context.Context, req GoogleTestRequest) (TestReport, error) {
	if !s.bucket.TryAcquire() {
		return TestReport{}, ErrRateLimited
	}

	client, err := s.factory.FromAPIKey(ctx, req.APIKey)
	if err != nil {
		return TestReport{}, fmt.Errorf("building google client: %w", err)
	}

	if err := client.Probe(ctx, req.Service); err != nil {
		outcome := model.Fail("Authentication failed", err)
		s.record(ctx, req.Service.DisplayName(), outcome)
		return TestReport{Results: []model.Outcome{outcome}, Permissions: []string{}}, nil
	}

	outcomes := []model.Outcome{model.OK("Authentication successful", "")}
	switch req.Service {
	case model.ServiceYouTube:
		outcomes = append(outcomes, s.testYouTube(ctx, client, req.TestType)...)
	case model.ServiceDrive:
		outcomes = append(outcomes, s.testDrive(ctx, client, req.TestType)...)
	case model.ServiceSheets:
		outcomes = append(outcomes, s.testSheets(ctx, client, req.TestType)...)
	case model.ServiceCalendar:
		outcomes = append(outcomes, s.testCalendar(ctx, client, req.TestType)...)
	case model.ServiceGmail:
		outcomes = append(outcomes, s.testGmail(ctx, client, req.TestType)...)
	default:
		return TestReport{}, fmt.Errorf("%w: %q", model.ErrUnsupportedService, req.Service)
	}

	permissions := []string{}
	if req.ProjectID != "" {
		if roles, err := client.ProjectRoles(ctx, req.ProjectID); err == nil {
			permissions = roles
		} else {
			s.logger.Warn("permission lookup failed", "project_id", req.ProjectID, "error", err)
		}
	}

	for _, outcome := range outcomes {
		s.record(ctx, req.Service.DisplayName(), outcome)
	}

	return TestReport{Results: outcomes, Permissions: permissions}, nil
}

// CheckPermissions lists IAM role bindings for the given project. Unlike the
// lookup inside RunGoogleTest, failures here surface to the caller.
func (s *TestService) CheckPermissions(ctx context.Context, apiKey, projectID string) ([]string, error) {
	if !s.bucket.TryAcquire() {
		return nil, ErrRateLimited
	}

	client, err := s.factory.FromAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("building google client: %w", err)
	}

	return client.ProjectRoles(ctx, projectID)
}

func (s *TestService) testYouTube(ctx context.Context, client driven.GoogleClient, tt model.TestType) []model.Outcome {
	var outcomes []model.Outcome

	if tt.IncludesRead() {
		if details, err := client.ListOwnChannel(ctx); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to retrieve YouTube channel data", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully retrieved YouTube channel data", details))
		}
	}

	if tt == model.TestTypeWrite {
		if details, err := client.CreatePlaylist(ctx, testPlaylistTitle); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to create a YouTube playlist", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully created a YouTube playlist", details))
		}
	}

	return outcomes
}

func (s *TestService) testDrive(ctx context.Context, client driven.GoogleClient, tt model.TestType) []model.Outcome {
	var outcomes []model.Outcome

	if tt.IncludesRead() {
		if details, err := client.ListFiles(ctx, "", 10); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to retrieve Google Drive files", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully retrieved Google Drive files", details))
		}
	}

	if tt == model.TestTypeWrite {
		if details, err := client.CreateFile(ctx, "", testFileName, testFileContent); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to create a file in Google Drive", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully created a file in Google Drive", details))
		}
	}

	return outcomes
}

func (s *TestService) testSheets(ctx context.Context, client driven.GoogleClient, tt model.TestType) []model.Outcome {
	var outcomes []model.Outcome

	if tt.IncludesRead() {
		if details, err := client.GetSpreadsheet(ctx, s.spreadsheetID); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to retrieve Google Sheets data", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully retrieved Google Sheets data", details))
		}
	}

	if tt == model.TestTypeWrite {
		row := []any{"Test", "Data", time.Now().UTC().Format(time.RFC3339)}
		if details, err := client.AppendRow(ctx, s.spreadsheetID, "A1", row); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to append data to Google Sheets", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully appended data to Google Sheets", details))
		}
	}

	return outcomes
}

func (s *TestService) testCalendar(ctx context.Context, client driven.GoogleClient, tt model.TestType) []model.Outcome {
	var outcomes []model.Outcome

	if tt.IncludesRead() {
		if details, err := client.ListUpcomingEvents(ctx, 10); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to retrieve Google Calendar events", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully retrieved Google Calendar events", details))
		}
	}

	if tt == model.TestTypeWrite {
		if details, err := client.CreateEvent(ctx, testEventSummary, time.Now().UTC(), time.Hour); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to create a Google Calendar event", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully created a Google Calendar event", details))
		}
	}

	return outcomes
}

func (s *TestService) testGmail(ctx context.Context, client driven.GoogleClient, tt model.TestType) []model.Outcome {
	var outcomes []model.Outcome

	if tt.IncludesRead() {
		if details, err := client.GetProfile(ctx); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to retrieve Gmail messages", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully retrieved Gmail messages", details))
		}
	}

	if tt == model.TestTypeWrite {
		if details, err := client.SendMessage(ctx, s.testEmail, testEmailSubject, testEmailBody); err != nil {
			outcomes = append(outcomes, model.Fail("Failed to send a Gmail message", err))
		} else {
			outcomes = append(outcomes, model.OK("Successfully sent a Gmail message", details))
		}
	}

	return outcomes
}

// record persists one outcome to the result log and mirrors failures into the
// error log. Persistence failures are logged, never surfaced; the test
// outcome has already been produced.
func (s *TestService) record(ctx context.Context, service string, outcome model.Outcome) {
	_, err := s.results.Append(ctx, model.TestResult{
		Service: service,
		Success: outcome.Success,
		Message: outcome.Message,
		Details: outcome.Details,
	})
	if err != nil {
		s.logger.Error("failed to persist test result", "service", service, "error", err)
	}

	if !outcome.Success {
		_, err := s.errlog.Append(ctx, model.ErrorLog{
			Service: service,
			Error:   outcome.Message,
			Details: outcome.Details,
		})
		if err != nil {
			s.logger.Error("failed to persist error log", "service", service, "error", err)
		}
	}
}
