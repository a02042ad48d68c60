// Package main provides the CLI entrypoint for housekeep.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/housekeep/internal/app"
	"github.com/verte-zerg/housekeep/internal/config"
	"github.com/verte-zerg/housekeep/internal/info"
	"github.com/verte-zerg/housekeep/internal/logger"
	"github.com/verte-zerg/housekeep/internal/model"
	"github.com/verte-zerg/housekeep/internal/report"
	"github.com/verte-zerg/housekeep/internal/settings"
	"github.com/verte-zerg/housekeep/internal/settingsform"
	"github.com/verte-zerg/housekeep/internal/staffing"
	"github.com/verte-zerg/housekeep/internal/tui"
)

var (
	settingsPath string
	debugLog     bool
	logDir       string

	dashboardXML string

	calcHotel      string
	calcStayover   int
	calcDeparture  int
	calcArrival    int
	calcShift      int
	calcEfficiency int
	calcChart      bool
	calcXLSX       string
	calcSave       bool

	settingsShow bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "housekeep",
		Short:             "Housekeeping staffing dashboard",
		Long:              "Estimate daily housekeeping staff from a property-management XML export.",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default: config.json beside the executable)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "verbose logging")
	rootCmd.Flags().StringVar(&dashboardXML, "xml", "", "XML export to load on start")

	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setup merges the TOML config under CLI flags and starts the logger.
func setup(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		// The config command must still open a broken file for editing.
		if cmd.Name() != "config" {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logErrf("warning: %v\n", err)
	}
	root := cmd.Root()
	applyStringConfig(root.PersistentFlags().Changed("settings"), &settingsPath, fileCfg.Dashboard.SettingsFile)
	applyBoolConfig(root.PersistentFlags().Changed("debug"), &debugLog, fileCfg.Log.Debug)
	if cmd == root {
		applyStringConfig(cmd.Flags().Changed("xml"), &dashboardXML, fileCfg.Dashboard.XML)
	}
	logDir = config.DefaultLogDir()
	applyStringConfig(false, &logDir, fileCfg.Log.Dir)

	if settingsPath == "" {
		path, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		settingsPath = path
	}

	// The dashboard owns the terminal, so only other commands mirror logs to stderr.
	if err := logger.Init(logger.Config{Debug: debugLog, Stderr: cmd != root, Dir: logDir}); err != nil {
		logErrf("failed to init logger: %v\n", err)
	}
	logger.Debug("starting", "command", cmd.Name(), "settings", settingsPath)
	return nil
}

func runDashboardCmd(_ *cobra.Command, _ []string) error {
	st := app.New(settingsPath)
	m := tui.NewModel(st, dashboardXML)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m.SaveErr != nil {
		return fmt.Errorf("failed to save settings on exit: %w", m.SaveErr)
	}
	return nil
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <xml>",
		Short: "Print the staffing plan for an XML export",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalcCmd,
	}
	d := settings.Defaults()
	cmd.Flags().StringVar(&calcHotel, "hotel", d.HotelName, "hotel name")
	cmd.Flags().IntVar(&calcStayover, "stayover", d.MinutesStayover, "minutes per stayover room")
	cmd.Flags().IntVar(&calcDeparture, "departure", d.MinutesDeparture, "minutes per departure room")
	cmd.Flags().IntVar(&calcArrival, "arrival", d.MinutesArrival, "extra minutes per arrival room")
	cmd.Flags().IntVar(&calcShift, "shift", d.ShiftMinutes, "working minutes per shift (>= 60)")
	cmd.Flags().IntVar(&calcEfficiency, "efficiency", d.EfficiencyPercent, "efficiency percent (10-150)")
	cmd.Flags().BoolVar(&calcChart, "chart", false, "append a bar chart of staff per day")
	cmd.Flags().StringVar(&calcXLSX, "xlsx", "", "also write the plan to an .xlsx workbook")
	cmd.Flags().BoolVar(&calcSave, "save", false, "save the resulting settings")
	return cmd
}

func runCalcCmd(cmd *cobra.Command, args []string) error {
	st := app.New(settingsPath)
	st.SetSettings(overrideSettings(cmd, st.Settings))

	if err := st.LoadXML(args[0]); err != nil {
		return err
	}
	plan := st.Plan()
	sum := staffing.Summarize(plan)
	out := cmd.OutOrStdout()
	opts := report.TerminalOptions(out)
	if err := report.Render(out, st.Settings.HotelName, plan, sum, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if calcChart && len(plan) > 0 {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := report.Chart(out, plan, opts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if calcXLSX != "" {
		if err := report.WriteWorkbook(calcXLSX, st.Settings.HotelName, plan, sum); err != nil {
			return err
		}
		logger.Info("workbook written", "path", calcXLSX, "days", len(plan))
		logErrf("Wrote %s\n", calcXLSX)
	}

	if calcSave {
		if err := st.Save(); err != nil {
			return err
		}
		logErrf("Saved settings to %s\n", st.SettingsPath)
	}
	return nil
}

// overrideSettings applies calc flags that were set explicitly.
func overrideSettings(cmd *cobra.Command, s model.Settings) model.Settings {
	flags := cmd.Flags()
	if flags.Changed("hotel") {
		s.HotelName = calcHotel
	}
	ints := []struct {
		name   string
		value  int
		target *int
	}{
		{"stayover", calcStayover, &s.MinutesStayover},
		{"departure", calcDeparture, &s.MinutesDeparture},
		{"arrival", calcArrival, &s.MinutesArrival},
		{"shift", calcShift, &s.ShiftMinutes},
		{"efficiency", calcEfficiency, &s.EfficiencyPercent},
	}
	for _, f := range ints {
		if flags.Changed(f.name) {
			*f.target = f.value
		}
	}
	return settings.Clamp(s)
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Edit or show the staffing settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsCmd,
	}
	cmd.Flags().BoolVar(&settingsShow, "show", false, "print the current settings as JSON")
	return cmd
}

func runSettingsCmd(cmd *cobra.Command, _ []string) error {
	st := app.New(settingsPath)
	if settingsShow {
		data, err := settings.Encode(st.Settings)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	values := settingsform.FromSettings(st.Settings)
	if err := settingsform.New(&values).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			logErrln("Cancelled, settings unchanged")
			return nil
		}
		return fmt.Errorf("failed to run settings form: %w", err)
	}
	updated, err := values.Settings()
	if err != nil {
		return err
	}
	st.SetSettings(updated)
	if err := st.Save(); err != nil {
		return err
	}
	logErrf("Saved settings to %s\n", st.SettingsPath)
	return nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "info [parameter]",
		Short:     "Explain the staffing parameters",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: info.Keys(),
		RunE:      runInfoCmd,
	}
}

func runInfoCmd(cmd *cobra.Command, args []string) error {
	keys := info.Keys()
	if len(args) == 1 {
		key := strings.ToLower(strings.TrimSpace(args[0]))
		if info.Lookup(key) == info.Fallback {
			return fmt.Errorf("unknown parameter %q (available: %s)", args[0], strings.Join(keys, ", "))
		}
		keys = []string{key}
	}
	out := cmd.OutOrStdout()
	for i, key := range keys {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if _, err := fmt.Fprintln(out, info.Lookup(key)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(changed bool, target, value *string) {
	if value == nil || changed {
		return
	}
	*target = *value
}

func applyBoolConfig(changed bool, target, value *bool) {
	if value == nil || changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# housekeep configuration
# Uncomment a value to enable it. CLI flags override config values.
# Staffing parameters live in the JSON settings file, not here.

[dashboard]
# settings-file = "/path/to/config.json"   # Settings file (default: beside the executable)
# xml = "/path/to/export.xml"              # Export loaded when the dashboard starts

[log]
# debug = false                            # Verbose logging
# dir = %q
`,
		config.DefaultLogDir(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
