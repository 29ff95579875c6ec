package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// TokenService validates OAuth bearer tokens against a target service and
// classifies opaque tokens by their provider prefix.
type TokenService struct {
	factory       driven.GoogleClientFactory
	spreadsheetID string
}

// NewTokenService creates a TokenService. The spreadsheet ID is the fixture
// used by the sheets validation probe.
func NewTokenService(factory driven.GoogleClientFactory, spreadsheetID string) *TokenService {
	return &TokenService{factory: factory, spreadsheetID: spreadsheetID}
}

// Validate performs the cheapest authenticated read the target service
// offers. Any upstream rejection means the token is invalid for that service.
func (s *TokenService) Validate(ctx context.Context, token, serviceRaw string) (model.Outcome, error) {
	service, err := model.ParseService(serviceRaw)
	if err != nil {
		return model.Outcome{}, err
	}

	client, err := s.factory.FromToken(ctx, token)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("building google client: %w", err)
	}

	var probeErr error
	switch service {
	case model.ServiceYouTube:
		_, probeErr = client.ListOwnChannel(ctx)
	case model.ServiceDrive:
		_, probeErr = client.ListFiles(ctx, "", 1)
	case model.ServiceSheets:
		_, probeErr = client.GetSpreadsheet(ctx, s.spreadsheetID)
	case model.ServiceCalendar:
		_, probeErr = client.ListCalendars(ctx)
	case model.ServiceGmail:
		_, probeErr = client.GetProfile(ctx)
	default:
		return model.Outcome{}, fmt.Errorf("%w: %q", model.ErrUnsupportedService, service)
	}

	if probeErr != nil {
		return model.Fail("Token is invalid", probeErr), nil
	}
	return model.OK("Token is valid", ""), nil
}

// Detect classifies a token by its provider prefix.
func (s *TokenService) Detect(token string) string {
	switch {
	case strings.HasPrefix(token, "goog_"):
		return "Google"
	case strings.HasPrefix(token, "az_"):
		return "Azure"
	default:
		return "Unknown"
	}
}
