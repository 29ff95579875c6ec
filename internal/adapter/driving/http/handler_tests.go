package httphandler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// TestGoogleAPIRequest is the JSON body for the dispatcher endpoint.
type TestGoogleAPIRequest struct {
	APIKey    string `json:"apiKey"`
	ProjectID string `json:"projectId"`
	Service   string `json:"service"`
	TestType  string `json:"testType"`
}

// TestGoogleAPI runs the test suite for one service against the supplied key.
func (h *Handler) TestGoogleAPI(w http.ResponseWriter, r *http.Request) {
	var req TestGoogleAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := model.ParseService(req.Service)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported service: %s", req.Service))
		return
	}

	testType, err := model.ParseTestType(req.TestType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.tests.RunGoogleTest(r.Context(), application.GoogleTestRequest{
		APIKey:    req.APIKey,
		ProjectID: req.ProjectID,
		Service:   service,
		TestType:  testType,
	})
	if err != nil {
		h.logger.Error("google api test failed", "service", req.Service, "error", err)
		writeServiceError(w, err, "An error occurred while testing the Google API")
		return
	}

	writeJSON(w, http.StatusOK, TestReportResponse{
		Results:     report.Results,
		Permissions: report.Permissions,
	})
}

// CheckGooglePermissions lists the IAM role bindings visible to the key.
func (h *Handler) CheckGooglePermissions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey    string `json:"apiKey"`
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permissions, err := h.tests.CheckPermissions(r.Context(), req.APIKey, req.ProjectID)
	if err != nil {
		h.logger.Error("permission check failed", "project_id", req.ProjectID, "error", err)
		writeServiceError(w, err, "An error occurred while checking permissions")
		return
	}

	if permissions == nil {
		permissions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"permissions": permissions})
}

// TestToken checks whether a bearer token is accepted by the target service.
// Invalid tokens and unknown services both come back as a 400 with the same
// body shape the success path uses.
func (h *Handler) TestToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token   string `json:"token"`
		Service string `json:"service"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.tokens.Validate(r.Context(), req.Token, req.Service)
	if err != nil || !outcome.Success {
		writeJSON(w, http.StatusBadRequest, model.Fail("Token is invalid", nil))
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// DetectService classifies a token by its provider prefix.
func (h *Handler) DetectService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"service": h.tokens.Detect(req.Token)})
}

// TestAPI is the generic multi-provider echo test. It never calls upstream;
// it confirms the request reached the server with credentials attached.
func (h *Handler) TestAPI(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result string
	switch req["service"] {
	case "Google":
		result = fmt.Sprintf("Google API test successful. API Key: %s, Project ID: %s",
			model.MaskSecret(req["API Key"]), req["Project ID"])
	case "Azure":
		result = fmt.Sprintf("Azure API test successful. API Key: %s, Subscription ID: %s",
			model.MaskSecret(req["API Key"]), req["Subscription ID"])
	default:
		writeError(w, http.StatusBadRequest, "Unsupported API service")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// TestYouTubeAPI runs a targeted YouTube test against caller-named resources.
func (h *Handler) TestYouTubeAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey     string `json:"apiKey"`
		ChannelID  string `json:"channelId"`
		VideoID    string `json:"videoId"`
		PlaylistID string `json:"playlistId"`
		TestType   string `json:"testType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	testType, err := model.ParseTestType(req.TestType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.tests.RunYouTubeTest(r.Context(), application.YouTubeTestRequest{
		APIKey:     req.APIKey,
		TestType:   testType,
		ChannelID:  req.ChannelID,
		VideoID:    req.VideoID,
		PlaylistID: req.PlaylistID,
	})
	if err != nil {
		h.logger.Error("youtube api test failed", "error", err)
		writeServiceError(w, err, "An error occurred while testing the YouTube API")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// TestDriveAPI runs a targeted Drive test against caller-named resources.
func (h *Handler) TestDriveAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey      string `json:"apiKey"`
		FolderID    string `json:"folderId"`
		FileID      string `json:"fileId"`
		FileName    string `json:"fileName"`
		FileContent string `json:"fileContent"`
		TestType    string `json:"testType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	testType, err := model.ParseTestType(req.TestType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.tests.RunDriveTest(r.Context(), application.DriveTestRequest{
		APIKey:   req.APIKey,
		TestType: testType,
		FolderID: req.FolderID,
		FileID:   req.FileID,
		FileName: req.FileName,
		Content:  req.FileContent,
	})
	if err != nil {
		h.logger.Error("drive api test failed", "error", err)
		writeServiceError(w, err, "An error occurred while testing the Google Drive API")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// TestSheetsAPI runs a targeted Sheets test against a caller-named spreadsheet.
func (h *Handler) TestSheetsAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey        string `json:"apiKey"`
		SpreadsheetID string `json:"spreadsheetId"`
		Range         string `json:"range"`
		Values        string `json:"values"`
		TestType      string `json:"testType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	testType, err := model.ParseTestType(req.TestType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.tests.RunSheetsTest(r.Context(), application.SheetsTestRequest{
		APIKey:        req.APIKey,
		TestType:      testType,
		SpreadsheetID: req.SpreadsheetID,
		Range:         req.Range,
		Values:        req.Values,
	})
	if err != nil {
		h.logger.Error("sheets api test failed", "error", err)
		writeServiceError(w, err, "An error occurred while testing the Google Sheets API")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// TestAzureAPI is a placeholder echo for the Azure form; no Azure SDK call
// is made.
func (h *Handler) TestAzureAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey         string `json:"apiKey"`
		SubscriptionID string `json:"subscriptionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := fmt.Sprintf("Azure API test successful. API Key: %s, Subscription ID: %s",
		model.MaskSecret(req.APIKey), req.SubscriptionID)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}
