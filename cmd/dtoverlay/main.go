package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/leodido/dtoverlay"
	"github.com/leodido/dtoverlay/internal/config"
	"github.com/leodido/dtoverlay/internal/logging"
	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
	"gopkg.in/yaml.v3"
)

// Build metadata injected via ldflags.
// When built without ldflags these remain empty and the version command
// omits them.
var (
	version = ""
	commit  = ""
	date    = ""
)

// exit terminates the process. Tests replace it to observe exit codes.
var exit = os.Exit

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// outputFormat selects how command results are printed.
type outputFormat int

const (
	outputText outputFormat = iota
	outputJSON
	outputYAML
)

var outputFormatIDs = map[outputFormat][]string{
	outputText: {"text"},
	outputJSON: {"json"},
	outputYAML: {"yaml", "yml"},
}

// app holds state shared by all subcommands.
type app struct {
	verbosity  int
	configPath string
	output     outputFormat
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dtoverlay",
		Short: "Device tree overlay applicability checks",
		Long: `dtoverlay tells whether device tree overlay sources apply to the running board.

An overlay applies when the compatible property of its root node shares at least
one entry with the compatible list exposed by firmware (/proc/device-tree/compatible).
It also prints the description found in each overlay's leading comments.`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			logging.Setup(a.verbosity, os.Stderr)
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	a.addGlobalFlags(root.PersistentFlags())

	root.AddCommand(a.describeCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.platformCmd())
	root.AddCommand(versionCmd())

	return root
}

// addGlobalFlags registers the flags shared by all subcommands.
func (a *app) addGlobalFlags(flags *pflag.FlagSet) {
	flags.CountVarP(&a.verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	flags.StringVar(&a.configPath, "config", "", "Path to a TOML config file")
	flags.VarP(
		enumflag.New(&a.output, "format", outputFormatIDs, enumflag.EnumCaseInsensitive),
		"output", "o", "Output format: text, json or yaml",
	)
}

// platformOptions returns the library options derived from config and an
// optional --platform override.
func (a *app) platformOptions(platformPath string) []dtoverlay.Option {
	path := a.cfg.Platform.Path
	if platformPath != "" {
		path = platformPath
	}
	return []dtoverlay.Option{
		dtoverlay.WithPlatformPath(path),
		dtoverlay.WithModelPath(a.cfg.Platform.ModelPath),
		dtoverlay.WithExtensions(a.cfg.Overlays.Extensions...),
	}
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <overlay>...",
		Short: "Print the description of overlay sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			views := make([]overlayView, 0, len(args))
			for _, path := range args {
				desc, err := dtoverlay.DescribeFile(path)
				if err != nil {
					return err
				}
				views = append(views, overlayView{Path: path, Description: desc})
			}

			return a.print(c.OutOrStdout(), views, func(w io.Writer) {
				for _, v := range views {
					if len(views) == 1 {
						fmt.Fprintln(w, v.Description)
						continue
					}
					fmt.Fprintf(w, "%s: %s\n", v.Path, v.Description)
				}
			})
		},
	}
}

// CheckOptions defines flags for the check subcommand.
type CheckOptions struct {
	Platform string `flag:"platform" flagshort:"p" flagdescr:"Path to the platform compatible list (overrides config)"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (a *app) checkCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <overlay>",
		Short: "Check whether an overlay applies to this platform",
		Long: `Check whether an overlay applies to this platform.
Exits with code 0 if the overlay applies, 1 if it does not.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			m, err := dtoverlay.Check(args[0], a.platformOptions(opts.Platform)...)
			if err != nil {
				return err
			}

			err = a.print(c.OutOrStdout(), newOverlayView(*m), func(w io.Writer) {
				if m.Applicable {
					fmt.Fprintf(w, "OK: %s applies (matched %q)\n", args[0], m.Matched)
					return
				}
				fmt.Fprintf(w, "FAIL: %s does not apply to this platform\n", args[0])
			})
			if err != nil {
				return err
			}
			if !m.Applicable {
				exit(1)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ListOptions defines flags for the list subcommand.
type ListOptions struct {
	All      bool   `flag:"all" flagshort:"a" flagdescr:"Include overlays that do not apply"`
	Platform string `flag:"platform" flagshort:"p" flagdescr:"Path to the platform compatible list (overrides config)"`
}

func (o *ListOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (a *app) listCmd() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List overlays in a directory that apply to this platform",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			dir := a.cfg.Overlays.Dir
			if len(args) == 1 {
				dir = args[0]
			}

			matches, err := dtoverlay.Scan(dir, a.platformOptions(opts.Platform)...)
			if err != nil {
				return err
			}
			if !opts.All {
				matches = dtoverlay.Applicable(matches)
			}

			views := make([]overlayView, 0, len(matches))
			for _, m := range matches {
				views = append(views, newOverlayView(m))
			}

			return a.print(c.OutOrStdout(), views, func(w io.Writer) {
				writeOverlayTable(w, views, opts.All)
			})
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// PlatformOptions defines flags for the platform subcommand.
type PlatformOptions struct {
	Platform string `flag:"platform" flagshort:"p" flagdescr:"Path to the platform compatible list (overrides config)"`
}

func (o *PlatformOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (a *app) platformCmd() *cobra.Command {
	opts := &PlatformOptions{}

	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Display the platform identity exposed by firmware",
		Args:  cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			p, err := dtoverlay.ProbePlatform(a.platformOptions(opts.Platform)...)
			if err != nil {
				return err
			}

			view := platformView{
				Model:         p.Model,
				KernelRelease: p.KernelRelease,
				Compatible:    p.Compatible,
			}
			return a.print(c.OutOrStdout(), view, func(w io.Writer) {
				fmt.Fprint(w, p)
			})
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool version",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintln(c.OutOrStdout(), versionString())
			return nil
		},
	}
}

func versionString() string {
	if version == "" {
		return "dtoverlay (dev)"
	}
	s := "dtoverlay " + version
	if commit != "" {
		s += fmt.Sprintf(" (%s)", commit)
	}
	if date != "" {
		s += " built " + date
	}
	return s
}

type overlayView struct {
	Path        string   `json:"path" yaml:"path"`
	Description string   `json:"description" yaml:"description"`
	Compatible  []string `json:"compatible,omitempty" yaml:"compatible,omitempty"`
	Applicable  bool     `json:"applicable" yaml:"applicable"`
	Matched     string   `json:"matched,omitempty" yaml:"matched,omitempty"`
}

func newOverlayView(m dtoverlay.Match) overlayView {
	return overlayView{
		Path:        m.Overlay.Path,
		Description: m.Overlay.Description,
		Compatible:  m.Overlay.Compatible,
		Applicable:  m.Applicable,
		Matched:     m.Matched,
	}
}

type platformView struct {
	Model         string   `json:"model" yaml:"model"`
	KernelRelease string   `json:"kernel_release" yaml:"kernel_release"`
	Compatible    []string `json:"compatible" yaml:"compatible"`
}

// print writes v in the selected structured format, or calls text.
func (a *app) print(w io.Writer, v any, text func(io.Writer)) error {
	switch a.output {
	case outputJSON:
		return printJSON(w, v)
	case outputYAML:
		return printYAML(w, v)
	default:
		text(w)
		return nil
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeOverlayTable(w io.Writer, views []overlayView, showStatus bool) {
	if len(views) == 0 {
		fmt.Fprintln(w, "no overlays found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, v := range views {
		name := filepath.Base(v.Path)
		if showStatus {
			status := "-"
			if v.Applicable {
				status = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, status, v.Description)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, v.Description)
	}
	tw.Flush()
}
