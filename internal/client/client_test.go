package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if !strings.HasPrefix(a, "prep_") {
		t.Errorf("expected prep_ prefix, got %q", a)
	}
	if a == b {
		t.Error("expected unique session IDs")
	}
}

func TestClient_Chat(t *testing.T) {
	var got dto.ChatRequest
	var header string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		header = r.Header.Get(dto.SessionHeader)
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reply":"Feedback: Good length.","next_question":"Q2","asked_idx":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithSessionID("prep_test"))
	resp, err := c.Chat(context.Background(), dto.ChatRequest{Mode: dto.ModeInterview, Message: "answer"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got.Message != "answer" || got.Mode != dto.ModeInterview {
		t.Errorf("unexpected request body %+v", got)
	}
	if header != "prep_test" {
		t.Errorf("expected session header, got %q", header)
	}
	if resp.NextQuestion != "Q2" || resp.AskedIdx == nil || *resp.AskedIdx != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestClient_Busy(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat" {
			close(entered)
			<-unblock
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := c.Chat(context.Background(), dto.ChatRequest{}); err != nil {
			t.Errorf("first Chat() error = %v", err)
		}
	}()
	<-entered

	if !c.Pending(EndpointChat) {
		t.Error("expected chat to be pending")
	}
	if _, err := c.Chat(context.Background(), dto.ChatRequest{}); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if _, err := c.Status(context.Background()); err != nil {
		t.Errorf("other endpoints must not be blocked, got %v", err)
	}

	close(unblock)
	wg.Wait()

	if c.Pending(EndpointChat) {
		t.Error("expected chat guard to be released")
	}
}

func TestClient_ErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"request_in_flight","message":"busy"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ATSScore(context.Background(), dto.ATSScoreRequest{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != "request_in_flight" || apiErr.Message != "busy" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClient_UploadResume(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantText  string
		wantError string
	}{
		{"extracted", http.StatusOK, `{"text":"Jane Doe"}`, "Jane Doe", ""},
		{"rejected", http.StatusBadRequest, `{"error":"No file provided"}`, "", "No file provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var filename, content string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				file, header, err := r.FormFile("file")
				if err == nil {
					filename = header.Filename
					b, _ := io.ReadAll(file)
					content = string(b)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New(srv.URL).UploadResume(context.Background(), "cv.txt", strings.NewReader("resume body"))
			if err != nil {
				t.Fatalf("UploadResume() error = %v", err)
			}
			if filename != "cv.txt" || content != "resume body" {
				t.Errorf("unexpected upload %q %q", filename, content)
			}
			if resp.Text != tt.wantText || resp.Error != tt.wantError {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestClient_SpeechAndTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/speech":
			var req dto.SpeechRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Format != "wav" {
				t.Errorf("expected wav format, got %q", req.Format)
			}
			w.Header().Set("Content-Type", "audio/wav")
			w.Write([]byte("RIFF"))
		case "/transcriptions":
			if r.FormValue("language") != "en-US" {
				t.Errorf("expected language field, got %q", r.FormValue("language"))
			}
			w.Write([]byte(`{"text":"hello there"}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	audio, err := c.Speech(context.Background(), dto.SpeechRequest{Input: "hi", Format: "wav"})
	if err != nil || string(audio) != "RIFF" {
		t.Fatalf("Speech() = %q, %v", audio, err)
	}
	text, err := c.Transcribe(context.Background(), "utterance.flac", []byte("fLaC"), "en-US")
	if err != nil || text != "hello there" {
		t.Fatalf("Transcribe() = %q, %v", text, err)
	}
}

func TestClient_History(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history/prep_abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"session_id":"prep_abc","turns":[],"reports":[]}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, WithSessionID("prep_abc")).History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if resp.SessionID != "prep_abc" {
		t.Errorf("unexpected session %q", resp.SessionID)
	}
}

func TestClient_NewSession(t *testing.T) {
	c := New("http://localhost", WithSessionID("prep_old"))
	id := c.NewSession()
	if id == "prep_old" || c.SessionID() != id {
		t.Errorf("expected rotated session, got %q", id)
	}
}
