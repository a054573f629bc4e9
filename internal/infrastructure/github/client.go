package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hamzahalilovic/social-network-developers/internal/config"
)

var ErrUserNotFound = errors.New("github user not found")

// Repo is the subset of the GitHub repository payload the profile page shows.
type Repo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

type Client interface {
	LatestRepos(ctx context.Context, username string) ([]Repo, error)
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(cfg config.GithubConfig, logger *log.Logger) Client {
	base := strings.TrimSpace(cfg.APIBaseURL)
	if base == "" {
		base = "https://api.github.com"
	}
	return &httpClient{
		baseURL: strings.TrimRight(base, "/"),
		token:   strings.TrimSpace(cfg.Token),
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

func (c *httpClient) LatestRepos(ctx context.Context, username string) ([]Repo, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil github client")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUserNotFound
	}

	endpoint := fmt.Sprintf(
		"%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Printf("[Github] repo lookup failed user=%s status=%d body=%q",
				username, resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return nil, fmt.Errorf("github repo lookup failed: status=%d", resp.StatusCode)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
