package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/fileowners/pkg/owners/config"
	"github.com/jamesainslie/fileowners/pkg/owners/logging"
	"github.com/jamesainslie/fileowners/pkg/owners/report"
)

var (
	cfgFile string

	// cfgErr holds a config file read error until a command can report it.
	cfgErr error

	rootCmd = &cobra.Command{
		Use:   "fileowners <directory>",
		Short: "Report the owner of every matching file in a directory",
		Long: `fileowners lists the files in a directory whose names end with one of
the given extensions and records the owning account of each one.

The report is written to file_owners.txt in the current working directory.
Files whose owner cannot be read are recorded as "Unknown Owner" and the
run continues.

Examples:
  fileowners C:\Shares\Finance              # prompt for extensions
  fileowners --ext .pdf,.xlsx D:\Data       # no prompt
  fileowners -e "" -f csv -o owners.csv .   # every entry, CSV report
  fileowners config show                    # show configuration`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: initializeLogging,
		RunE:              runScan,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/fileowners/config.yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output on stderr")

	rootCmd.Flags().StringP("ext", "e", "", "comma-separated extensions to match (skips the prompt)")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutput, "report file path, relative to the working directory")
	rootCmd.Flags().StringP("format", "f", config.DefaultFormat, fmt.Sprintf("report format %v", report.Available()))

	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("extensions", rootCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	config.Setup(viper.GetViper(), cfgFile)
	cfgErr = config.Read(viper.GetViper(), cfgFile)
}

// Execute runs the root command and reports any error once.
func Execute() error {
	defer func() { _ = logging.Close() }()

	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(w io.Writer, format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("[DEBUG] "+format, args...)))
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(w io.Writer, format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// printWarning prints a warning to w regardless of quiet mode.
func printWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("Warning: "+format, args...)))
}

// printError prints an error message to w.
func printError(w io.Writer, format string, args ...interface{}) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Error: "+format, args...)))
}
