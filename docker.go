package islgloss

import (
	"context"
	"embed"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/rs/zerolog"
	"github.com/tassa-yoniso-manasi-karoto/dockerutil"
)

const (
	defaultProjectName   = "islgloss"
	defaultContainerName = "islgloss-stanza-1"
	serviceName          = "stanza"
	serviceCheckInterval = 500 * time.Millisecond
	maxServiceWaitTime   = 600 * time.Second // models may still need downloading
	maxInstallWaitTime   = 45 * time.Minute  // first start: pip pulls stanza and torch, then the models
	depsInstalledMarker  = "__ISLGLOSS_DEPS_OK__"

	portPlaceholder = "__ISLGLOSS_SERVICE_PORT__"

	// Base image; the service dependencies are installed into it on first start
	serviceImage = "python:3.11-slim"
)

var (
	// Embed the service directory
	//go:embed service/*
	serviceFiles embed.FS

	// Default settings
	DefaultQueryTimeout   = 60 * time.Second
	DefaultDockerLogLevel = zerolog.TraceLevel

	// Logger for this package
	Logger = zerolog.Nop()

	// Package-level instance for backward compatibility
	instance       *Manager
	instanceMu     sync.Mutex
	instanceClosed bool
)

// EnableDebugLogging enables debug logging for the package
func EnableDebugLogging() {
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// Manager handles Docker lifecycle and service management for the Stanza
// service that annotates and parses English sentences
type Manager struct {
	docker                   *dockerutil.DockerManager
	logger                   *dockerutil.ContainerLogConsumer
	client                   *Client
	projectName              string
	containerName            string
	serviceURL               string
	servicePort              int
	QueryTimeout             time.Duration
	serviceReady             bool
	downloadProgressCallback func(current, total int64, status string)
	mu                       sync.RWMutex
}

// ManagerOption defines function signature for options to configure Manager
type ManagerOption func(*Manager)

// WithQueryTimeout sets a custom query timeout
func WithQueryTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.QueryTimeout = timeout
	}
}

// WithProjectName sets a custom project name for multiple instances
func WithProjectName(name string) ManagerOption {
	return func(m *Manager) {
		m.projectName = name
		m.containerName = name + "-" + serviceName + "-1"
	}
}

// WithContainerName overrides the default container name
func WithContainerName(name string) ManagerOption {
	return func(m *Manager) {
		m.containerName = name
	}
}

// WithDownloadProgressCallback sets a callback for download progress during image pull
func WithDownloadProgressCallback(cb func(current, total int64, status string)) ManagerOption {
	return func(m *Manager) {
		m.downloadProgressCallback = cb
	}
}

// ptr returns a pointer to the given string value
func ptr(s string) *string {
	return &s
}

// buildComposeProject creates the compose project definition for the service
func buildComposeProject(name, dataDir string, port int) *types.Project {
	return &types.Project{
		Name: name,
		Services: types.Services{
			serviceName: {
				Name:       serviceName,
				Image:      serviceImage,
				StdinOpen:  true,
				Tty:        true,
				WorkingDir: "/workspace",
				Environment: types.MappingWithEquals{
					"STANZA_RESOURCES_DIR": ptr("/workspace/stanza_resources"),
					"PIP_CACHE_DIR":        ptr("/workspace/pip-cache"),
				},
				Volumes: []types.ServiceVolumeConfig{{
					Type:   types.VolumeTypeBind,
					Source: dataDir,
					Target: "/workspace",
				}},
				Ports: []types.ServicePortConfig{{
					Target:    uint32(port),
					Published: fmt.Sprintf("%d", port),
					Protocol:  "tcp",
				}},
			},
		},
	}
}

// NewManager creates a new service manager instance
func NewManager(ctx context.Context, opts ...ManagerOption) (*Manager, error) {
	// Enable Docker logging to stdout
	dockerutil.SetLogOutput(dockerutil.LogToStdout)

	manager := &Manager{
		projectName:   defaultProjectName,
		containerName: defaultContainerName,
		QueryTimeout:  DefaultQueryTimeout,
	}

	for _, opt := range opts {
		opt(manager)
	}

	// Models and pip cache persist in the XDG data directory
	dataDir := filepath.Join(xdg.DataHome, manager.projectName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate port: %w", err)
	}
	manager.servicePort = listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	Logger.Info().Int("port", manager.servicePort).Str("data_dir", dataDir).Msg("Allocated port for Stanza service")

	project := buildComposeProject(manager.projectName, dataDir, manager.servicePort)

	logConfig := dockerutil.LogConfig{
		Prefix:      manager.projectName,
		ShowService: true,
		ShowType:    true,
		LogLevel:    DefaultDockerLogLevel,
		InitMessage: "Python",
	}

	logger := dockerutil.NewContainerLogConsumer(logConfig)

	cfg := dockerutil.Config{
		ProjectName:      manager.projectName,
		Project:          project,
		RequiredServices: []string{serviceName},
		LogConsumer:      logger,
		Timeout: dockerutil.Timeout{
			Create:   30 * time.Minute,
			Recreate: 60 * time.Minute,
			Start:    30 * time.Minute,
		},
		OnPullProgress: manager.downloadProgressCallback,
	}

	dockerManager, err := dockerutil.NewDockerManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker manager: %w", err)
	}

	manager.docker = dockerManager
	manager.logger = logger
	manager.serviceURL = fmt.Sprintf("http://localhost:%d", manager.servicePort)
	manager.client = NewClient(manager.serviceURL, manager.QueryTimeout)

	return manager, nil
}

// PullImage pre-pulls the service image with progress tracking
func (m *Manager) PullImage(ctx context.Context) error {
	opts := dockerutil.DefaultPullOptions()
	if m.downloadProgressCallback != nil {
		opts.OnProgress = m.downloadProgressCallback
	}
	return dockerutil.PullImage(ctx, serviceImage, opts)
}

// Init initializes the docker service and starts the Stanza server
func (m *Manager) Init(ctx context.Context) error {
	if err := m.docker.Init(); err != nil {
		return fmt.Errorf("failed to initialize docker: %w", err)
	}

	if err := m.startService(ctx); err != nil {
		return fmt.Errorf("failed to start Stanza service: %w", err)
	}

	return nil
}

// InitRecreate removes existing containers then creates and starts new ones
func (m *Manager) InitRecreate(ctx context.Context, noCache bool) error {
	if noCache {
		if err := m.docker.InitRecreateNoCache(); err != nil {
			return err
		}
	} else {
		if err := m.docker.InitRecreate(); err != nil {
			return err
		}
	}

	if err := m.startService(ctx); err != nil {
		return fmt.Errorf("failed to start Stanza service: %w", err)
	}

	return nil
}

// startService copies the service files and starts the Python server
func (m *Manager) startService(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dockerClient, err := m.docker.GetClient()
	if err != nil {
		return fmt.Errorf("failed to get Docker client: %w", err)
	}

	Logger.Debug().Msg("Copying service files...")
	if err := m.copyServiceFiles(ctx, dockerClient); err != nil {
		return fmt.Errorf("failed to copy service files: %w", err)
	}

	if m.isServiceRunning(ctx) {
		m.serviceReady = true
		Logger.Debug().Msg("Service is already running")
		return nil
	}
	Logger.Debug().Msg("Service is not running, starting it...")

	installed := m.dependenciesInstalled(ctx, dockerClient)
	if !installed {
		Logger.Info().Msg("Installing Stanza into the container, this can take several minutes on first start")
	}

	// Run in a new bash session to avoid the interactive Python REPL of the image
	startCmd := []string{"/bin/bash", "-c", serviceStartCommand(installed)}

	execConfig := container.ExecOptions{
		Cmd:          startCmd,
		AttachStdout: false,
		AttachStderr: false,
		Detach:       true,
		Tty:          false,
		WorkingDir:   "/workspace",
	}

	exec, err := dockerClient.ContainerExecCreate(ctx, m.containerName, execConfig)
	if err != nil {
		return fmt.Errorf("failed to create service exec: %w", err)
	}

	if err := dockerClient.ContainerExecStart(ctx, exec.ID, container.ExecStartOptions{
		Detach: true,
		Tty:    false,
	}); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	Logger.Debug().Msg("Stanza service exec started")

	if err := m.waitForService(ctx, serviceWaitTime(installed)); err != nil {
		return fmt.Errorf("service failed to start: %w", err)
	}

	m.serviceReady = true
	return nil
}

// copyServiceFiles writes the embedded service files into the container
func (m *Manager) copyServiceFiles(ctx context.Context, dockerClient *client.Client) error {
	if _, err := m.execCommand(ctx, dockerClient, []string{"mkdir", "-p", "/workspace/service"}); err != nil {
		return fmt.Errorf("failed to create service directory: %w", err)
	}

	entries, err := serviceFiles.ReadDir("service")
	if err != nil {
		return fmt.Errorf("failed to list service files: %w", err)
	}

	portStr := fmt.Sprintf("%d", m.servicePort)
	for _, e := range entries {
		content, err := serviceFiles.ReadFile("service/" + e.Name())
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}

		modified := strings.ReplaceAll(string(content), portPlaceholder, portStr)
		if strings.Contains(modified, portPlaceholder) {
			return fmt.Errorf("failed to replace port placeholder in %s", e.Name())
		}

		// heredoc with a quoted delimiter so the content is written verbatim
		writeCmd := []string{
			fmt.Sprintf("cat > /workspace/service/%s << 'EOF'\n%s\nEOF", e.Name(), modified),
		}
		if _, err := m.execCommand(ctx, dockerClient, writeCmd); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Name(), err)
		}
		Logger.Trace().Str("file", e.Name()).Msg("Service file copied")
	}

	return nil
}

// execCommand executes a command in the container and returns the output
func (m *Manager) execCommand(ctx context.Context, dockerClient *client.Client, cmd []string) ([]byte, error) {
	bashCmd := append([]string{"/bin/bash", "-c"}, strings.Join(cmd, " "))

	Logger.Trace().Strs("command", bashCmd).Msg("Executing command")

	execConfig := container.ExecOptions{
		Cmd:          bashCmd,
		AttachStdout: true,
		AttachStderr: true,
		Tty:          false,
		WorkingDir:   "/workspace",
	}

	exec, err := dockerClient.ContainerExecCreate(ctx, m.containerName, execConfig)
	if err != nil {
		return nil, err
	}

	resp, err := dockerClient.ContainerExecAttach(ctx, exec.ID, container.ExecStartOptions{})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	output, err := io.ReadAll(resp.Reader)
	if err != nil {
		return nil, err
	}

	Logger.Trace().Str("output", string(output)).Msg("Command output")
	return output, nil
}

// isServiceRunning checks if the Stanza service is responding with its
// models loaded
func (m *Manager) isServiceRunning(ctx context.Context) bool {
	health, err := m.client.Health(ctx)
	if err != nil {
		Logger.Trace().Err(err).Msg("Health check error")
		return false
	}
	Logger.Trace().Interface("response", health).Msg("Health check response")
	return health.Status == "ready"
}

// dependenciesInstalled reports whether the container's Python can already
// import the service dependencies
func (m *Manager) dependenciesInstalled(ctx context.Context, dockerClient *client.Client) bool {
	out, err := m.execCommand(ctx, dockerClient, []string{
		"python", "-c", "'import stanza, flask'", "&&", "echo", depsInstalledMarker,
	})
	if err != nil {
		Logger.Trace().Err(err).Msg("Dependency check failed")
		return false
	}
	return strings.Contains(string(out), depsInstalledMarker)
}

// serviceStartCommand returns the shell command that starts the server,
// installing its dependencies first when they are missing
func serviceStartCommand(installed bool) string {
	run := "exec python -u /workspace/service/server.py"
	if installed {
		return run
	}
	return "pip install -q -r /workspace/service/requirements.txt && " + run
}

// serviceWaitTime is how long to wait for the service to report ready
func serviceWaitTime(installed bool) time.Duration {
	if installed {
		return maxServiceWaitTime
	}
	return maxInstallWaitTime
}

// waitForService waits up to timeout for the Stanza service to be ready
func (m *Manager) waitForService(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	attempt := 0
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(serviceCheckInterval):
			attempt++
			if m.isServiceRunning(ctx) {
				Logger.Debug().Int("attempts", attempt).Msg("Service is ready!")
				return nil
			}
		}
	}

	return fmt.Errorf("service failed to start within %v", timeout)
}

// GetClient returns the HTTP client for making API calls
func (m *Manager) GetClient() *Client {
	return m.client
}

// IsReady returns whether the service is ready to accept requests
func (m *Manager) IsReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.serviceReady
}

// Stop stops the docker service
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	m.serviceReady = false
	m.mu.Unlock()

	return m.docker.Stop()
}

// Close implements io.Closer
func (m *Manager) Close() error {
	m.mu.Lock()
	m.serviceReady = false
	m.mu.Unlock()

	m.logger.Close()
	return m.docker.Close()
}

// Package-level functions for backward compatibility

// getOrCreateDefaultManager returns or creates the default manager instance
func getOrCreateDefaultManager(ctx context.Context) (*Manager, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance == nil || instanceClosed {
		mgr, err := NewManager(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create default manager: %w", err)
		}
		instance = mgr
		instanceClosed = false
	}

	return instance, nil
}

// Init initializes the default docker service
func Init() error {
	ctx := context.Background()
	mgr, err := getOrCreateDefaultManager(ctx)
	if err != nil {
		return err
	}
	return mgr.Init(ctx)
}

// InitRecreate removes existing containers and creates new ones
func InitRecreate(noCache bool) error {
	ctx := context.Background()
	mgr, err := getOrCreateDefaultManager(ctx)
	if err != nil {
		return err
	}
	return mgr.InitRecreate(ctx, noCache)
}

// Close closes the default instance
func Close() error {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		err := instance.Close()
		instanceClosed = true
		return err
	}
	return nil
}

// SetDefaultManager sets a custom manager as the package-level default instance,
// so that package-level functions like Translate reuse its container.
func SetDefaultManager(mgr *Manager) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = mgr
	instanceClosed = false
}

// ClearDefaultManager clears the default manager reference.
// This does NOT close the manager - the caller is responsible for that.
func ClearDefaultManager() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance = nil
	instanceClosed = true
}
