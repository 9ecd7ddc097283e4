// Package oauth runs the browser-based OAuth login for the Google contact store.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// CallbackServer receives the OAuth redirect on a loopback address.
type CallbackServer struct {
	mu            sync.Mutex
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a callback server.
// Port 0 picks a free port when the server starts.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// Start begins listening on 127.0.0.1.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.server = srv

	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.fail(err)
		}
	}()

	return nil
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/html")

	if errParam := q.Get("error"); errParam != "" {
		desc := q.Get("error_description")
		s.fail(fmt.Errorf("oauth error: %s - %s", errParam, desc))
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed: "+desc, ""))
		return
	}

	if q.Get("state") != s.expectedState {
		s.fail(errors.New("state mismatch"))
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed: invalid state parameter", ""))
		return
	}

	code := q.Get("code")
	if code == "" {
		s.fail(errors.New("no authorization code received"))
		_, _ = fmt.Fprint(w, resultHTML("Authorization failed: no code received", ""))
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	_, _ = fmt.Fprint(w, resultHTML("Authorization successful!", "You can close this window and return to addrbook."))
}

func (s *CallbackServer) fail(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

// WaitForCode blocks until the authorization code arrives, the callback
// reports an error, or ctx is done.
func (s *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
}

// Stop shuts down the callback server. Stopping twice is harmless.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the redirect URI for this callback server.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", s.Port())
}

//nolint:misspell // CSS properties use American spelling
func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>addrbook - Google sign-in</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex;
               justify-content: center; align-items: center; height: 100vh; margin: 0; background: #FAFAFA; }
        .box { text-align: center; background: white; padding: 40px 60px; border-radius: 12px;
               border: 1px solid #DDD; }
        h1 { color: #333; margin: 0 0 8px 0; }
        p { color: #777; margin: 0; }
    </style>
</head>
<body>
    <div class="box">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// OpenBrowser opens the default browser to the given URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
