package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

// Endpoint names used by the in-flight guard.
const (
	EndpointChat          = "chat"
	EndpointUpload        = "upload_resume"
	EndpointATS           = "ats_score"
	EndpointStatus        = "status"
	EndpointSpeech        = "speech"
	EndpointTranscription = "transcriptions"
	EndpointHistory       = "history"
)

const (
	defaultTimeout  = 60 * time.Second
	maxResponseSize = 50 * 1024 * 1024
	sessionIDPrefix = "prep_"
)

// ErrBusy is returned when a call to an endpoint is made while a previous
// call to the same endpoint has not finished.
var ErrBusy = errors.New("request already in progress")

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	sessionID string
	pending   map[string]bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		sessionID: NewSessionID(),
		pending:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewSessionID() string {
	return sessionIDPrefix + uuid.NewString()
}

func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// NewSession rotates the practice session ID and returns the new one.
func (c *Client) NewSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = NewSessionID()
	return c.sessionID
}

// Pending reports whether a call to endpoint is in progress.
func (c *Client) Pending(endpoint string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[endpoint]
}

func (c *Client) acquire(endpoint string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[endpoint] {
		return nil, ErrBusy
	}
	c.pending[endpoint] = true
	return func() {
		c.mu.Lock()
		delete(c.pending, endpoint)
		c.mu.Unlock()
	}, nil
}

func (c *Client) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	release, err := c.acquire(EndpointChat)
	if err != nil {
		return nil, err
	}
	defer release()

	var out dto.ChatResponse
	if err := c.postJSON(ctx, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadResume posts the file as the multipart field "file". A rejected
// upload is not an error: the server's message is returned in the
// response's Error field.
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (*dto.UploadResumeResponse, error) {
	release, err := c.acquire(EndpointUpload)
	if err != nil {
		return nil, err
	}
	defer release()

	body, contentType, err := multipartBody(filename, r, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/upload_resume", contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out dto.UploadResumeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest && out.Error == "" {
		return nil, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &out, nil
}

func (c *Client) ATSScore(ctx context.Context, req dto.ATSScoreRequest) (*dto.ATSScoreResponse, error) {
	release, err := c.acquire(EndpointATS)
	if err != nil {
		return nil, err
	}
	defer release()

	var out dto.ATSScoreResponse
	if err := c.postJSON(ctx, "/ats_score", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Status(ctx context.Context) (*dto.StatusResponse, error) {
	release, err := c.acquire(EndpointStatus)
	if err != nil {
		return nil, err
	}
	defer release()

	var out dto.StatusResponse
	if err := c.getJSON(ctx, "/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Speech returns synthesized audio in the requested format.
func (c *Client) Speech(ctx context.Context, req dto.SpeechRequest) ([]byte, error) {
	release, err := c.acquire(EndpointSpeech)
	if err != nil {
		return nil, err
	}
	defer release()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/speech", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading speech audio: %w", err)
	}
	return audio, nil
}

func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte, language string) (string, error) {
	release, err := c.acquire(EndpointTranscription)
	if err != nil {
		return "", err
	}
	defer release()

	var fields map[string]string
	if language != "" {
		fields = map[string]string{"language": language}
	}
	body, contentType, err := multipartBody(filename, bytes.NewReader(audio), fields)
	if err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, "/transcriptions", contentType, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out dto.TranscriptionResponse
	if err := decode(resp, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// History returns the persisted turns and reports of the current session.
func (c *Client) History(ctx context.Context) (*dto.HistoryResponse, error) {
	release, err := c.acquire(EndpointHistory)
	if err != nil {
		return nil, err
	}
	defer release()

	var out dto.HistoryResponse
	if err := c.getJSON(ctx, "/history/"+url.PathEscape(c.SessionID()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(dto.SessionHeader, c.SessionID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func decode(resp *http.Response, out any) error {
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	apiErr := &Error{Status: resp.StatusCode}
	var body dto.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func multipartBody(filename string, r io.Reader, fields map[string]string) (io.Reader, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", filename, err)
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &body, writer.FormDataContentType(), nil
}
