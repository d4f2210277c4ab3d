package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kjkrol/glmin/internal/app"
)

const envPrefix = "GLMIN"

// optionKeys are the flags decoded into app.Options.
var optionKeys = []string{"frames", "delay", "width", "height", "title", "checked"}

// NewRootCommand returns the command running variant on backend. Flag
// defaults come from the variant, so running without flags reproduces it.
func NewRootCommand(variant app.Variant, backend app.Backend) *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)
	v := viper.New()
	defaults := variant.Options()

	cmd := &cobra.Command{
		Use:   "glmin",
		Short: "Draw a unit square for a few frames and exit",
		Long: `glmin opens a window, compiles a vertex and a fragment shader, links them,
uploads two triangles covering the viewport and presents a fixed number of
frames. Any shader, link or driver error aborts the run with a diagnostic.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, cfgFile)
			if err != nil {
				return err
			}
			run, err := variant.Apply(opts)
			if err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}
			slog.Debug("options", "variant", run.Name, "frames", run.Frames, "delay", run.FrameDelay,
				"validation", run.Renderer.Validation.String())
			return app.Run(cmd.Context(), run, backend, slog.Default())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.Int("frames", defaults.Frames, "number of frames to present")
	flags.Duration("delay", defaults.Delay, "pause after each presented frame")
	flags.Int("width", defaults.Width, "window width")
	flags.Int("height", defaults.Height, "window height")
	flags.String("title", defaults.Title, "window title")
	flags.Bool("checked", defaults.Checked, "query the driver error state after every graphics call")

	if err := bindFlags(v, flags, optionKeys...); err != nil {
		panic(err)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		flag := flags.Lookup(key)
		if flag == nil {
			return fmt.Errorf("cli: no flag for option %q", key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("cli: bind %s: %w", key, err)
		}
	}
	return nil
}

func loadOptions(v *viper.Viper, cfgFile string) (app.Options, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return app.Options{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		slog.Debug("using config file", "file", v.ConfigFileUsed())
	}
	var opts app.Options
	if err := v.Unmarshal(&opts); err != nil {
		return app.Options{}, fmt.Errorf("decode options: %w", err)
	}
	return opts, nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
