// Package cli wires the synchronizer used by the graft commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/host"
	"github.com/aretw0/graft/internal/validator"
	"github.com/aretw0/graft/pkg/adapters/file"
	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/adapters/redis"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// DefinitionNames are the file names FindDefinitions looks for, in order.
var DefinitionNames = []string{"graft.yaml", "graft.yml", "graft.jsonc", "graft.json", "graft.toml"}

// Options select where definitions come from and where commands are published.
type Options struct {
	// Definitions is a definition file or a directory holding one.
	// Empty means the built-in demo commands.
	Definitions string
	Namespace   string
	RedisAddr   string
	RedisPrefix string
	// Out receives the output of demo actions.
	Out io.Writer
}

// Engine is a synchronizer between console senders and remote listeners, plus what it was built from.
type Engine struct {
	*graft.Synchronizer[host.Sender, host.Listener]

	Loader    ports.DefinitionLoader[host.Sender]
	Directory *host.Directory
	Metrics   *prometheus.Registry

	closer io.Closer
	logger *slog.Logger
}

// CreateEngine loads, validates and synchronizes the command definitions.
func CreateEngine(opts Options, logger *slog.Logger) (*Engine, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	// 1. Definitions
	dir := host.DefaultDirectory()
	loader, err := createLoader(opts, dir, logger)
	if err != nil {
		return nil, err
	}
	root, err := LoadTree(loader)
	if err != nil {
		return nil, err
	}

	// 2. Platform
	var platform ports.Platform[host.Listener]
	var closer io.Closer
	if opts.RedisAddr != "" {
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = "graft:"
		}
		rp := redis.New[host.Listener](opts.RedisAddr, "", 0, redis.WithPrefix(prefix))
		platform, closer = rp, rp
		logger.Info("Publishing commands to redis", "addr", opts.RedisAddr, "prefix", prefix)
	} else {
		platform = memory.NewPlatform[host.Listener]()
	}

	// 3. Synchronizer
	reg := prometheus.NewRegistry()
	namespace := opts.Namespace
	if namespace == "" {
		namespace = graft.DefaultNamespace
	}
	synchronizer, err := graft.New(root, platform, host.ToSender,
		graft.WithLogger(logger),
		graft.WithNamespace(namespace),
		graft.WithMetrics(observability.NewMetrics(reg)),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing synchronizer: %w", err)
	}
	for key, p := range host.Native(dir) {
		synchronizer.Share(key, p)
	}
	if err := synchronizer.Synchronize(); err != nil {
		return nil, fmt.Errorf("error synchronizing commands: %w", err)
	}

	return &Engine{
		Synchronizer: synchronizer,
		Loader:       loader,
		Directory:    dir,
		Metrics:      reg,
		closer:       closer,
		logger:       logger,
	}, nil
}

func createLoader(opts Options, dir *host.Directory, logger *slog.Logger) (ports.DefinitionLoader[host.Sender], error) {
	if opts.Definitions == "" {
		return host.Loader(dir, opts.Out), nil
	}
	path, err := ResolveDefinitions(opts.Definitions)
	if err != nil {
		return nil, err
	}
	return file.New(path,
		file.WithTypes[host.Sender](host.Types(dir)),
		file.WithProviders(host.Providers(dir)),
		file.WithActions(host.Actions(opts.Out)),
		file.WithPermission(host.Permission),
		file.WithLogger[host.Sender](logger),
	), nil
}

// LoadTree loads a tree and validates it before anything is mapped.
func LoadTree(loader ports.DefinitionLoader[host.Sender]) (*tree.Node[host.Sender], error) {
	root, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading definitions: %w", err)
	}
	if err := validator.ValidateTree(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Reload loads the definitions again and replaces the registered commands.
// The previous commands stay registered when anything fails.
func (e *Engine) Reload() error {
	root, err := LoadTree(e.Loader)
	if err != nil {
		return err
	}
	return e.Synchronizer.Reload(root)
}

// Close releases the platform connection, if any.
func (e *Engine) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// ResolveDefinitions turns a file or directory argument into a definition file path.
func ResolveDefinitions(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("definitions not found: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	if found, ok := FindDefinitions(path); ok {
		return found, nil
	}
	return "", fmt.Errorf("no definition file in %s (looked for %v)", path, DefinitionNames)
}

// FindDefinitions returns the first definition file present in dir.
func FindDefinitions(dir string) (string, bool) {
	for _, name := range DefinitionNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
