// Package timetastic is a minimal read-only client for the Timetastic API.
//
// All four list endpoints share one quirk: a 404 means "nothing configured
// yet" on fresh accounts, so it is reported as an empty collection rather
// than an error. Anything else unexpected (network failure, auth rejection,
// undecodable body) surfaces as a fetch error carrying the response detail.
package timetastic

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"absencebot/internal/domain"
)

const externalHTTPTimeout = 30 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: externalHTTPTimeout,
}

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   externalHTTPClient,
	}
}

func (c *Client) FetchDepartments() ([]domain.Department, error) {
	var departments []domain.Department
	found, err := c.getJSON("/departments", nil, &departments)
	if err != nil {
		return nil, fmt.Errorf("fetching departments: %w", err)
	}
	if !found {
		log.Println("No departments found - this might be normal if none are configured yet")
		return nil, nil
	}
	return departments, nil
}

func (c *Client) FetchUsers() ([]domain.User, error) {
	var users []domain.User
	found, err := c.getJSON("/users", nil, &users)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	if !found {
		log.Println("No users found - this might be normal if none are configured yet")
		return nil, nil
	}
	return users, nil
}

func (c *Client) FetchAbsenceTypes() ([]domain.AbsenceType, error) {
	var types []domain.AbsenceType
	found, err := c.getJSON("/absence-types", nil, &types)
	if err != nil {
		return nil, fmt.Errorf("fetching absence types: %w", err)
	}
	if !found {
		log.Println("No absence types found - this might be normal if none are configured yet")
		return nil, nil
	}
	return types, nil
}

// holidaysEnvelope is the documented response shape of /holidays. Some
// deployments return a bare array instead, so FetchAbsences accepts both.
type holidaysEnvelope struct {
	Holidays []domain.Absence `json:"holidays"`
}

// FetchAbsences lists bookings overlapping [start, end], both YYYY-MM-DD.
// A response that is valid JSON but matches neither known shape yields zero
// records: absences are best-effort and must not sink the whole report.
func (c *Client) FetchAbsences(start, end string) ([]domain.Absence, error) {
	query := url.Values{}
	query.Set("start", start)
	query.Set("end", end)

	body, status, err := c.get("/holidays", query)
	if err != nil {
		return nil, fmt.Errorf("fetching absences: %w", err)
	}
	if status == http.StatusNotFound {
		log.Println("Got 404 response when fetching absences - returning empty list")
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetching absences: Timetastic API returned %d: %s", status, string(body))
	}

	var envelope holidaysEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Holidays != nil {
		log.Printf("Found %d absences in the response", len(envelope.Holidays))
		return envelope.Holidays, nil
	}

	var bare []domain.Absence
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	log.Printf("Unexpected API response format for absences: %s", string(body))
	return nil, nil
}

// getJSON fetches path and decodes a 200 body into out. The bool result is
// false when the endpoint returned 404.
func (c *Client) getJSON(path string, query url.Values, out any) (bool, error) {
	body, status, err := c.get(path, query)
	if err != nil {
		return false, err
	}
	if status == http.StatusNotFound {
		return false, nil
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("Timetastic API returned %d: %s", status, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("parsing response: %w", err)
	}
	return true, nil
}

func (c *Client) get(path string, query url.Values) ([]byte, int, error) {
	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("executing request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}

	return body, resp.StatusCode, nil
}
