package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/severedgames/mysteryparty/internal/api"
	"github.com/severedgames/mysteryparty/internal/factory"
	"github.com/severedgames/mysteryparty/internal/seed"
	"github.com/severedgames/mysteryparty/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "gamectl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gamectl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application with the seeded roster
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	require.NoError(t, seed.ApplyWithCost(context.Background(), app.Storage, bcrypt.MinCost, testutil.NopLogger()))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PersonaService: app.PersonaService,
		RoomService:    app.RoomService,
		ChatService:    app.ChatService,
		DMService:      app.DMService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

type roomResponse struct {
	Code    string `json:"code"`
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
}

type messageListResponse struct {
	Messages []struct {
		ID      int64  `json:"id"`
		Sender  string `json:"sender"`
		Content string `json:"content"`
	} `json:"messages"`
	LastID int64 `json:"last_id"`
}

type dmResponse struct {
	ID        int64  `json:"id"`
	Admin     string `json:"admin"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
	Read      bool   `json:"read"`
}

type dmListResponse struct {
	Messages []dmResponse `json:"messages"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_LoginAndMe(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("login", "--user", "Dhruv", "--pass", "bike123")
	require.NoError(t, err, "output: %s", output)

	var resp loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "Dhruv", resp.User.Username)
	assert.Equal(t, "player", resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	// Token should be saved in the token file
	output, err = cli.run("me")
	require.NoError(t, err, "output: %s", output)

	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "Dhruv", me.Username)
}

func TestCLI_LoginBadPassword(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("login", "--user", "Dhruv", "--pass", "nope")
	require.Error(t, err)
	assert.Contains(t, output, "INVALID_CREDENTIALS")
}

func TestCLI_CluesAndPersonas(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("login", "--user", "Dhruv", "--pass", "bike123")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("persona", "list")
	require.NoError(t, err, "output: %s", output)

	var personas struct {
		Personas []struct {
			Username string `json:"username"`
			Group    string `json:"group"`
		} `json:"personas"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &personas))
	assert.Len(t, personas.Personas, 14)

	output, err = cli.run("clues")
	require.NoError(t, err, "output: %s", output)

	var clues struct {
		Clues []string `json:"clues"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &clues))
	assert.Len(t, clues.Clues, 3)

	// Murder clues require the admin token
	output, err = cli.run("clues", "--murder")
	require.Error(t, err)
	assert.Contains(t, output, "FORBIDDEN")
}

func TestCLI_RoomChatFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	admin := newCLIRunner(t, ts.addr)

	output, err := admin.run("login", "--user", "admin", "--pass", "admin123")
	require.NoError(t, err, "output: %s", output)
	var adminLogin loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &adminLogin))

	// Admin creates a room
	output, err = admin.run("room", "create", "--player-a", "Dhruv", "--player-b", "Aishani")
	require.NoError(t, err, "output: %s", output)

	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	require.Len(t, room.Code, 4)

	// Both players log in with their own token files
	dhruv := &cliRunner{binaryPath: admin.binaryPath, serverURL: admin.serverURL, tokenFile: filepath.Join(t.TempDir(), "token-dhruv")}
	aishani := &cliRunner{binaryPath: admin.binaryPath, serverURL: admin.serverURL, tokenFile: filepath.Join(t.TempDir(), "token-aishani")}

	output, err = dhruv.run("login", "--user", "Dhruv", "--pass", "bike123")
	require.NoError(t, err, "output: %s", output)
	output, err = aishani.run("login", "--user", "Aishani", "--pass", "silver22")
	require.NoError(t, err, "output: %s", output)

	// Exchange messages
	output, err = dhruv.run("msg", "send", room.Code, "meet me by the fountain")
	require.NoError(t, err, "output: %s", output)
	output, err = aishani.run("msg", "send", room.Code, "on my way")
	require.NoError(t, err, "output: %s", output)

	output, err = dhruv.run("msg", "history", room.Code)
	require.NoError(t, err, "output: %s", output)

	var history messageListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &history))
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "Dhruv", history.Messages[0].Sender)
	assert.Equal(t, "on my way", history.Messages[1].Content)
	assert.Equal(t, history.Messages[1].ID, history.LastID)

	// A third player cannot read the room
	pragya := &cliRunner{binaryPath: admin.binaryPath, serverURL: admin.serverURL, tokenFile: filepath.Join(t.TempDir(), "token-pragya")}
	output, err = pragya.run("login", "--user", "Pragya", "--pass", "elmwood3")
	require.NoError(t, err, "output: %s", output)

	output, err = pragya.run("msg", "history", room.Code)
	require.Error(t, err)
	assert.Contains(t, output, "FORBIDDEN")
}

func TestCLI_DirectMessages(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	admin := newCLIRunner(t, ts.addr)

	output, err := admin.run("login", "--user", "admin", "--pass", "admin123")
	require.NoError(t, err, "output: %s", output)

	output, err = admin.run("dm", "send", "your next clue is in the garden", "--to", "Dhruv")
	require.NoError(t, err, "output: %s", output)

	var sent dmResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sent))
	assert.False(t, sent.Read)

	dhruv := &cliRunner{binaryPath: admin.binaryPath, serverURL: admin.serverURL, tokenFile: filepath.Join(t.TempDir(), "token-dhruv")}
	output, err = dhruv.run("login", "--user", "Dhruv", "--pass", "bike123")
	require.NoError(t, err, "output: %s", output)

	output, err = dhruv.run("dm", "inbox")
	require.NoError(t, err, "output: %s", output)

	var inbox dmListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &inbox))
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, "your next clue is in the garden", inbox.Messages[0].Content)
}
