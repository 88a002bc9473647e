package dtoverlay

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/leodido/dtoverlay/internal/logging"
)

// Default firmware locations of the board identity.
const (
	DefaultPlatformPath = "/proc/device-tree/compatible"
	DefaultModelPath    = "/proc/device-tree/model"
)

// DefaultExtensions are the file extensions [Scan] treats as overlay sources.
var DefaultExtensions = []string{".dts", ".dtso"}

// probeConfig holds the configuration for a platform read or overlay check.
type probeConfig struct {
	platformPath string
	modelPath    string
	extensions   []string
}

// Option configures where platform data is read from and which files
// [Scan] considers.
type Option func(*probeConfig)

// WithPlatformPath sets a custom path for the platform compatible list.
// Production code uses the default /proc/device-tree/compatible.
func WithPlatformPath(path string) Option {
	return func(c *probeConfig) {
		if path != "" {
			c.platformPath = path
		}
	}
}

// WithModelPath sets a custom path for the platform model file.
func WithModelPath(path string) Option {
	return func(c *probeConfig) {
		if path != "" {
			c.modelPath = path
		}
	}
}

// WithExtensions sets the file extensions [Scan] accepts (e.g., ".dts").
func WithExtensions(exts ...string) Option {
	return func(c *probeConfig) {
		if len(exts) > 0 {
			c.extensions = exts
		}
	}
}

func newProbeConfig(opts []Option) *probeConfig {
	cfg := &probeConfig{
		platformPath: DefaultPlatformPath,
		modelPath:    DefaultModelPath,
		extensions:   DefaultExtensions,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ProbePlatform reads the running board's identity.
// The compatible list is required; the model and kernel release are
// best-effort and left empty when unavailable.
func ProbePlatform(opts ...Option) (*Platform, error) {
	cfg := newProbeConfig(opts)
	logger := logging.GetLogger("probe")

	compatible, err := readPlatformCompatible(cfg.platformPath)
	if err != nil {
		return nil, err
	}

	p := &Platform{Compatible: compatible}

	p.Model, err = readModel(cfg.modelPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", cfg.modelPath).Msg("platform model unavailable")
	}

	p.KernelRelease, err = kernelRelease()
	if err != nil {
		logger.Debug().Err(err).Msg("kernel release unavailable")
	}

	return p, nil
}

// readPlatformCompatible reads the NUL-separated compatible list at path.
func readPlatformCompatible(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Source: SourcePlatform, Path: path, Err: err}
	}
	list := ParsePlatformCompatible(data)
	logger := logging.GetLogger("probe")
	logger.Debug().
		Str("path", path).
		Strs("compatible", list).
		Msg("read platform compatible list")
	return list, nil
}

// readModel reads the NUL-terminated model string at path.
// A missing file is not an error.
func readModel(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", &ReadError{Source: SourceModel, Path: path, Err: err}
	}
	return strings.TrimSpace(strings.TrimRight(string(data), "\x00")), nil
}
