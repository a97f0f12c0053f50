// Package api is the REST client for the task tracker backend. It speaks the
// server's envelope format, attaches the bearer token to protected calls,
// and maps failure envelopes onto the shared sentinel errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// Profile mirrors the server's profile projection.
type Profile struct {
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Task mirrors the server's task payload.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Analytics mirrors the server's per-user task counts.
type Analytics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used for protected calls. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// do sends a request and decodes the envelope. A failure envelope is turned
// into an error carrying the server message, wrapped in the sentinel that
// matches the status code.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	if !env.Success {
		return nil, fmt.Errorf("%s: %w", env.Message, sentinelForStatus(resp.StatusCode))
	}
	return &env, nil
}

func sentinelForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	default:
		return common.ErrorInternal
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*envelope, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType)
}

// decodeData unmarshals the envelope data into out.
func decodeData(env *envelope, out any) error {
	if env.Data == nil {
		return fmt.Errorf("missing response data: %w", common.ErrorInternal)
	}
	return json.Unmarshal(env.Data, out)
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) error {
	payload := map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/api/users/register", payload)
	return err
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	env, err := c.doJSON(ctx, http.MethodPost, "/api/users/login", payload)
	if err != nil {
		return "", err
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := decodeData(env, &data); err != nil {
		return "", err
	}

	c.token = data.Token
	return data.Token, nil
}

func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, "")
	if err != nil {
		return nil, err
	}
	return profileFromEnvelope(env)
}

func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName string) (*Profile, error) {
	payload := map[string]string{"firstName": firstName, "lastName": lastName}
	env, err := c.doJSON(ctx, http.MethodPut, "/api/users/profile", payload)
	if err != nil {
		return nil, err
	}
	return profileFromEnvelope(env)
}

func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	_, err := c.doJSON(ctx, http.MethodPut, "/api/users/password", payload)
	return err
}

// UpdateProfilePicture uploads the picture as a multipart form.
func (c *Client) UpdateProfilePicture(ctx context.Context, filename string, file io.Reader) (*Profile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("profilePic", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPut, "/api/users/profile-pic", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return profileFromEnvelope(env)
}

func profileFromEnvelope(env *envelope) (*Profile, error) {
	var data struct {
		User Profile `json:"user"`
	}
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tasks", nil, "")
	if err != nil {
		return nil, err
	}

	var data struct {
		Tasks []Task `json:"tasks"`
	}
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	return data.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title, status string) (*Task, error) {
	payload := map[string]string{"title": title}
	if status != "" {
		payload["status"] = status
	}

	env, err := c.doJSON(ctx, http.MethodPost, "/api/tasks", payload)
	if err != nil {
		return nil, err
	}
	return taskFromEnvelope(env)
}

// UpdateTask patches status and/or title; nil fields are left unchanged.
func (c *Client) UpdateTask(ctx context.Context, id int64, status, title *string) (*Task, error) {
	payload := map[string]any{}
	if status != nil {
		payload["status"] = *status
	}
	if title != nil {
		payload["title"] = *title
	}

	env, err := c.doJSON(ctx, http.MethodPut, "/api/tasks/"+strconv.FormatInt(id, 10), payload)
	if err != nil {
		return nil, err
	}
	return taskFromEnvelope(env)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/tasks/"+strconv.FormatInt(id, 10), nil, "")
	return err
}

func (c *Client) TaskAnalytics(ctx context.Context) (*Analytics, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tasks/analytics", nil, "")
	if err != nil {
		return nil, err
	}

	var a Analytics
	if err := decodeData(env, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func taskFromEnvelope(env *envelope) (*Task, error) {
	var data struct {
		Task Task `json:"task"`
	}
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	return &data.Task, nil
}
