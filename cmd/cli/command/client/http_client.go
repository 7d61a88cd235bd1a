package client

// http_client.go = talks to the moviehub HTTP API for the CLI.

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("movie not found")
	ErrIncompleteForm = errors.New("title and year are both required")
)

// Movie mirrors one entry of GET /movies/json
type Movie struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type movieListResponse struct {
	Movies []Movie `json:"movies"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// constructor for HTTP client; redirects are not followed so the
// add/delete endpoints' 302 can be observed directly
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *HTTPClient) ListMovies() ([]Movie, error) {
	response, err := c.httpClient.Get(c.baseURL + "/movies/json")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close() // Ensure the response body is closed

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list movies failed with status: %s", response.Status)
	}

	var out movieListResponse
	if err := json.NewDecoder(response.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode movie list: %w", err)
	}
	return out.Movies, nil
}

// AddMovie submits the add form; the server answers 302 on success and
// re-renders the form (200) when a field is missing.
func (c *HTTPClient) AddMovie(title string, year int) error {
	form := url.Values{}
	form.Set("title", title)
	form.Set("year", strconv.Itoa(year))

	response, err := c.httpClient.PostForm(c.baseURL+"/movies/add", form)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusFound, http.StatusSeeOther:
		return nil
	case http.StatusOK:
		return ErrIncompleteForm
	default:
		return fmt.Errorf("add movie failed with status: %s", response.Status)
	}
}

func (c *HTTPClient) DeleteMovie(id int64) error {
	response, err := c.httpClient.PostForm(fmt.Sprintf("%s/movies/%d/delete", c.baseURL, id), url.Values{})
	if err != nil {
		return err
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusFound, http.StatusSeeOther:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("delete movie failed with status: %s", response.Status)
	}
}
