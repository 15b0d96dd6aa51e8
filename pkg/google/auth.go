package google

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/forecal/forecal/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when no OAuth token has been seeded yet. The
// process cannot sync anything without one, so startup treats this as fatal.
var ErrNoCredentials = errors.New("no Google credentials stored, seed the google_auth table first")

// GoogleAuth yields an authorized HTTP client from the OAuth token stored in
// the database. Obtaining the initial token (the consent flow) happens out of
// band; this only loads, refreshes, and persists it.
type GoogleAuth struct {
	db          *sql.DB
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(db *sql.DB, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarEventsScope, gcal.CalendarReadonlyScope},
	}

	return &GoogleAuth{db: db, oauthConfig: oauthConfig}
}

func (g *GoogleAuth) loadToken(ctx context.Context) (*oauth2.Token, error) {
	var accessToken, refreshToken string
	var expiry int64
	err := g.db.QueryRowContext(ctx,
		"SELECT access_token, refresh_token, expiry FROM google_auth WHERE id = 1").
		Scan(&accessToken, &refreshToken, &expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to load Google auth token: %w", err)
	}
	if refreshToken == "" && accessToken == "" {
		return nil, ErrNoCredentials
	}

	return &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       time.Unix(expiry, 0),
	}, nil
}

func (g *GoogleAuth) saveToken(ctx context.Context, token *oauth2.Token) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO google_auth (id, access_token, refresh_token, expiry) VALUES (1, $1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET access_token = $1, refresh_token = $2, expiry = $3`,
		token.AccessToken, token.RefreshToken, token.Expiry.Unix())
	if err != nil {
		return fmt.Errorf("failed to store Google auth token: %w", err)
	}
	return nil
}

// Client returns an authorized HTTP client, refreshing the stored token when
// it has expired and persisting the refreshed one.
func (g *GoogleAuth) Client(ctx context.Context) (*http.Client, error) {
	token, err := g.loadToken(ctx)
	if err != nil {
		return nil, err
	}

	tokenSource := g.oauthConfig.TokenSource(ctx, token)
	freshToken, err := tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh Google auth token: %w", err)
	}
	if freshToken.AccessToken != token.AccessToken {
		log.Info("Google auth token refreshed")
		if err := g.saveToken(ctx, freshToken); err != nil {
			log.Errorf("failed to persist refreshed token: %v", err)
		}
	}

	return oauth2.NewClient(ctx, tokenSource), nil
}

// NewCalendarService builds an authorized Google Calendar API service.
func (g *GoogleAuth) NewCalendarService(ctx context.Context) (*gcal.Service, error) {
	client, err := g.Client(ctx)
	if err != nil {
		return nil, err
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}
