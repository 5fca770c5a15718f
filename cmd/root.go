package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fstools",
	Short: "Concurrent bulk filesystem operations",
	Long: `fstools walks, copies, moves and removes directory trees concurrently.

Every command shares the same worker limit and error policy: the first error
aborts the operation and is reported, and anything already done stays done.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fstools.yaml)")
	flags.IntP("workers", "w", fstools.DefaultConcurrency, "Maximum filesystem calls in flight")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.Bool("silent", false, "Disable all output except errors")
	flags.String("format", "text", "Output format (text|json)")
	flags.Bool("progress", false, "Show progress updates")
	flags.Bool("keep-going", false, "Let in-flight siblings finish after the first error")
	flags.Bool("preserve-owner", true, "Copy uid/gid when permitted")
	flags.Bool("verify", false, "Verify copied files with xxhash")

	for _, name := range []string{"workers", "verbose", "silent", "format", "progress", "keep-going", "preserve-owner", "verify"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".fstools" (without extension).
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fstools")
	}

	viper.SetEnvPrefix("FSTOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// optionsFromConfig turns flags, environment and config file into operation options.
func optionsFromConfig() (fstools.Options, error) {
	opts := fstools.NewOptions()

	workers := viper.GetInt("workers")
	if workers < 1 {
		return opts, fmt.Errorf("invalid workers value: %d", workers)
	}
	opts.Concurrency = workers
	opts.CancelOnError = !viper.GetBool("keep-going")
	opts.PreserveOwner = viper.GetBool("preserve-owner")
	opts.Verify = viper.GetBool("verify")

	switch {
	case viper.GetBool("verbose"):
		opts.LogLevel = fstools.LogLevelDebug
	case viper.GetBool("silent"):
		opts.LogLevel = fstools.LogLevelError
	default:
		opts.LogLevel = fstools.LogLevelWarn
	}

	switch format := viper.GetString("format"); format {
	case "text", "json":
	default:
		return opts, fmt.Errorf("invalid format: %s", format)
	}

	if viper.GetBool("progress") {
		opts.Progress = printProgress
	}

	// One logger for the command and every operation it runs.
	opts.Logger = fstools.NewLogger(opts.LogLevel)
	return opts, nil
}

func printProgress(stats fstools.Stats) {
	if viper.GetString("format") == "json" {
		jsonStats, _ := json.Marshal(stats)
		fmt.Fprintln(os.Stderr, string(jsonStats))
		return
	}
	fmt.Fprintf(os.Stderr, "\rVisited: %d, copied: %d files %d dirs %d links, removed: %d, %.2f MB/s",
		stats.EntriesVisited, stats.FilesCopied, stats.DirsCreated, stats.LinksCreated,
		stats.EntriesRemoved, stats.SpeedMBPerSec)
}

// printJSON writes v as one JSON document per line.
func printJSON(v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func quiet() bool {
	return viper.GetBool("silent")
}
