package widget_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	widgetHandler "github.com/AbdulManan133/chatbot-Ui/internal/handler/widget"
	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
	"github.com/AbdulManan133/chatbot-Ui/internal/store"
	widgetsvc "github.com/AbdulManan133/chatbot-Ui/internal/widget"
)

func newTestServer(t *testing.T) (*httptest.Server, *widgetsvc.Controller) {
	t.Helper()

	surface := widgetHandler.NewWebSurface(zerolog.Nop())
	zero := 0
	controller := widgetsvc.New(surface, store.NewMemory(), nil, nil, zerolog.Nop(), widgetsvc.Overrides{
		TypingDelayMS:  &zero,
		MessageDelayMS: &zero,
	})
	if err := controller.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(controller.Destroy)

	h := widgetHandler.New(controller, surface, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/", h.HandlePage)
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, controller
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestSendEndpointReturnsReply(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/widget/send", `{"message":"hello"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var reply chat.Message
	decodeBody(t, resp, &reply)
	if reply.Sender != chat.SenderBot {
		t.Fatalf("unexpected sender %s", reply.Sender)
	}
	if reply.Content != "Hello! How can I assist you?" {
		t.Fatalf("unexpected reply %q", reply.Content)
	}
	if reply.ID == "" || reply.Timestamp.IsZero() {
		t.Fatal("reply must carry id and timestamp")
	}
}

func TestSendEndpointIgnoresEmptyInput(t *testing.T) {
	srv, controller := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/widget/send", `{"message":"   "}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ignored" {
		t.Fatalf("unexpected body %v", body)
	}
	if len(controller.History()) != 1 {
		t.Fatal("empty send must not grow the history")
	}
}

func TestSendEndpointRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/widget/send", "not json")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	postJSON(t, srv.URL+"/api/widget/send", `{"message":"hello"}`).Body.Close()

	resp, err := http.Get(srv.URL + "/api/widget/history")
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	var history []chat.Message
	decodeBody(t, resp, &history)
	if len(history) != 3 {
		t.Fatalf("expected welcome + user + bot, got %d", len(history))
	}
	if history[1].Sender != chat.SenderUser || history[1].Content != "hello" {
		t.Fatalf("unexpected user message %+v", history[1])
	}
}

func TestStateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/widget/state")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	var body struct {
		State   string `json:"state"`
		BotName string `json:"botName"`
		Theme   string `json:"theme"`
		Surface struct {
			Open   bool `json:"open"`
			Typing bool `json:"typing"`
		} `json:"surface"`
	}
	decodeBody(t, resp, &body)
	if body.State != "closed" {
		t.Fatalf("unexpected state %q", body.State)
	}
	if body.BotName != "ChatBot" || body.Theme != "light" {
		t.Fatalf("unexpected options in state: %+v", body)
	}
	if body.Surface.Open || body.Surface.Typing {
		t.Fatalf("surface must start closed and quiet: %+v", body.Surface)
	}
}

func TestOpenCloseToggleEndpoints(t *testing.T) {
	srv, controller := newTestServer(t)

	var body map[string]string

	decodeBody(t, postJSON(t, srv.URL+"/api/widget/open", ""), &body)
	if body["state"] != "open" || controller.State() != widgetsvc.StateOpen {
		t.Fatalf("open failed: %v", body)
	}

	decodeBody(t, postJSON(t, srv.URL+"/api/widget/close", ""), &body)
	if body["state"] != "closed" || controller.State() != widgetsvc.StateClosed {
		t.Fatalf("close failed: %v", body)
	}

	decodeBody(t, postJSON(t, srv.URL+"/api/widget/toggle", ""), &body)
	if body["state"] != "open" {
		t.Fatalf("toggle failed: %v", body)
	}
}

func TestClearEndpoint(t *testing.T) {
	srv, controller := newTestServer(t)

	postJSON(t, srv.URL+"/api/widget/send", `{"message":"hello"}`).Body.Close()
	if len(controller.History()) != 3 {
		t.Fatal("send did not land")
	}

	resp := postJSON(t, srv.URL+"/api/widget/clear", "")
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "cleared" {
		t.Fatalf("unexpected body %v", body)
	}
	history := controller.History()
	if len(history) != 1 || history[0].Sender != chat.SenderBot {
		t.Fatalf("clear must leave only the welcome, got %+v", history)
	}
}

func TestOptionsEndpointMergesOverrides(t *testing.T) {
	srv, controller := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/widget/options",
		strings.NewReader(`{"botName":"SupportBot","typingDelay":250}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH options: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var body struct {
		BotName     string `json:"botName"`
		TypingDelay int64  `json:"typingDelay"`
		Theme       string `json:"theme"`
	}
	decodeBody(t, resp, &body)
	if body.BotName != "SupportBot" || body.TypingDelay != 250 {
		t.Fatalf("unexpected merged options: %+v", body)
	}
	if body.Theme != "light" {
		t.Fatal("unset fields must keep their defaults")
	}
	if controller.Options().TypingDelay != 250*time.Millisecond {
		t.Fatal("live options must reflect the patch")
	}
}

func TestOptionsEndpointRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/widget/options", strings.NewReader("nope"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH options: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestPageServesWidgetMarkup(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	page := string(data)
	for _, id := range []string{"chatbot-root", "chatbot-toggle", "chatbot-messages", "chatbot-input", "chatbot-send"} {
		if !strings.Contains(page, id) {
			t.Fatalf("page missing element %q", id)
		}
	}
}

func TestWebSocketDeliversEventsAndInteractions(t *testing.T) {
	srv, controller := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/widget/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// A toggle interaction from the browser opens the widget and echoes
	// an open event back over the socket.
	if err := conn.WriteJSON(map[string]string{"kind": "toggle"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var ev struct {
			Kind string `json:"kind"`
			Open *bool  `json:"open"`
		}
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		if ev.Kind == "open" {
			if ev.Open == nil || !*ev.Open {
				t.Fatalf("open event without open=true: %+v", ev)
			}
			break
		}
	}

	if controller.State() != widgetsvc.StateOpen {
		t.Fatal("toggle over websocket must open the widget")
	}
}
