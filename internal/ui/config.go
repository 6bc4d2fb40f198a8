package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/superpresidznt/jarvis/internal/config"
	"github.com/superpresidznt/jarvis/internal/dateutil"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  jarvis config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(in io.Reader, w io.Writer) error {
	configPath := config.DefaultConfigPath()
	_, _ = fmt.Fprintf(w, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		_, _ = fmt.Fprintln(w, "No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Created %s\n\n", configPath)
	}

	printConfig(w, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, w, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Review.Timezone = promptTimezone(reader, w, cfg.Review.Timezone)
	cfg.LLM.Provider = promptValue(reader, w, "LLM provider (copilot, ollama, lmstudio)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, w, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, w, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, w, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, w, cfg.UI.Theme)
	cfg.UI.Color = promptValue(reader, w, "Color output (auto, always, never)", cfg.UI.Color)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(w, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Current configuration:")
	_, _ = fmt.Fprintln(w, "──────────────────────")
	_, _ = fmt.Fprintln(w, "[storage]")
	_, _ = fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(w, "\n[review]")
	_, _ = fmt.Fprintf(w, "  timezone         = %s\n", cfg.Review.Timezone)
	if len(cfg.Review.Thresholds) > 0 {
		names := make([]string, 0, len(cfg.Review.Thresholds))
		for name := range cfg.Review.Thresholds {
			names = append(names, name)
		}
		sort.Strings(names)
		_, _ = fmt.Fprintln(w, "\n[review.thresholds]")
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "  %-24s = %g\n", name, cfg.Review.Thresholds[name])
		}
	}
	_, _ = fmt.Fprintln(w, "\n[llm]")
	_, _ = fmt.Fprintf(w, "  provider         = %s\n", cfg.LLM.Provider)
	_, _ = fmt.Fprintf(w, "  model            = %s\n", cfg.LLM.Model)
	_, _ = fmt.Fprintf(w, "  base_url         = %s\n", cfg.LLM.BaseURL)
	_, _ = fmt.Fprintln(w, "\n[ui]")
	_, _ = fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
	_, _ = fmt.Fprintf(w, "  color            = %s\n", cfg.UI.Color)
	_, _ = fmt.Fprintf(w, "\nThresholds that can be overridden: %s\n", strings.Join(review.ThresholdNames(), ", "))
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	_, _ = fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(w, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptTimezone(reader *bufio.Reader, w io.Writer, current string) string {
	for {
		value := promptValue(reader, w, "Timezone (IANA name, local or utc)", current)
		if _, err := dateutil.LoadLocation(value); err == nil {
			return value
		}
		_, _ = fmt.Fprintf(w, "  Unknown timezone %q.\n", value)
		if value == current {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		_, _ = fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
		if value == current {
			return current
		}
	}
}
