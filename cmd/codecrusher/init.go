package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/codecrusher"
	"github.com/sagarc03/codecrusher/config"
)

// skipChoice leaves a selectable field out of the generated file.
const skipChoice = "(skip)"

// prompter asks the user for configuration values.
type prompter interface {
	Select(label string, items []string) (string, error)
	Prompt(label string, validate func(string) error) (string, error)
}

type promptuiPrompter struct{}

func (p *promptuiPrompter) Select(label string, items []string) (string, error) {
	s := promptui.Select{
		Label: label,
		Items: items,
	}
	_, choice, err := s.Run()
	return choice, handlePromptError(err)
}

func (p *promptuiPrompter) Prompt(label string, validate func(string) error) (string, error) {
	pr := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	answer, err := pr.Run()
	return answer, handlePromptError(err)
}

// handlePromptError maps promptui cancellation to errCancelled.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
		return errCancelled
	}
	return err
}

func (a *app) initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create a configuration file interactively.

You will be prompted for:
  - Provider
  - Model
  - Maximum retries
  - Timeout in seconds
  - Whether to use the cache
  - Default tags (comma separated)
  - Default prompt text

Empty answers leave the key out of the file. An existing file is only
replaced with --force.`,
		Args: noArgs,
		RunE: a.runInit,
	}

	cmd.Flags().String(config.FlagConfig, config.DefaultPath, "configuration file to create")
	cmd.Flags().Bool("force", false, "overwrite an existing configuration file")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString(config.FlagConfig)
	force, _ := cmd.Flags().GetBool("force")
	if path == "" {
		path = config.DefaultPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
	}

	fileCfg, err := promptFileConfig(a.prompter)
	if err != nil {
		if errors.Is(err, errCancelled) {
			_, _ = fmt.Fprintln(a.stdout, "Cancelled.")
			return nil
		}
		return err
	}

	if err := fileCfg.Save(path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	a.logger.Info("wrote configuration file", "file", path)
	_, _ = fmt.Fprintf(a.stdout, "Configuration written to %s\n", path)
	return nil
}

// promptFileConfig collects a FileConfig from p.
func promptFileConfig(p prompter) (config.FileConfig, error) {
	var cfg config.FileConfig

	provider, err := p.Select("Provider", append([]string{skipChoice}, codecrusher.ProviderNames()...))
	if err != nil {
		return config.FileConfig{}, err
	}
	if provider != skipChoice {
		parsed, err := codecrusher.ParseProvider(provider)
		if err != nil {
			return config.FileConfig{}, err
		}
		cfg.Provider = &parsed
	}

	model, err := p.Prompt("Model (e.g., mistral-7b, gpt-4-turbo)", nil)
	if err != nil {
		return config.FileConfig{}, err
	}
	if model = strings.TrimSpace(model); model != "" {
		cfg.Model = &model
	}

	if cfg.MaxRetries, err = promptInt(p, "Maximum retries"); err != nil {
		return config.FileConfig{}, err
	}
	if cfg.Timeout, err = promptInt(p, "Timeout (seconds)"); err != nil {
		return config.FileConfig{}, err
	}

	useCache, err := p.Select("Use cache", []string{skipChoice, "yes", "no"})
	if err != nil {
		return config.FileConfig{}, err
	}
	switch useCache {
	case "yes":
		cfg.UseCache = codecrusher.Ptr(true)
	case "no":
		cfg.UseCache = codecrusher.Ptr(false)
	}

	tags, err := p.Prompt("Default tags (comma separated)", nil)
	if err != nil {
		return config.FileConfig{}, err
	}
	cfg.DefaultTags = splitTags(tags)

	prompt, err := p.Prompt("Default prompt text", nil)
	if err != nil {
		return config.FileConfig{}, err
	}
	if prompt != "" {
		cfg.DefaultPromptText = &prompt
	}

	return cfg, nil
}

func promptInt(p prompter, label string) (*int, error) {
	answer, err := p.Prompt(label, validateOptionalInt)
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return &n, nil
}

func validateOptionalInt(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if _, err := strconv.Atoi(input); err != nil {
		return errors.New("must be an integer")
	}
	return nil
}

// splitTags splits a comma separated list, dropping empty entries.
// It returns nil when no tag remains.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
