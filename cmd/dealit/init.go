package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	dealitconfig "github.com/daptify14/dealit/internal/config"
)

// initAnswers holds the form fields as strings, the way huh edits them.
type initAnswers struct {
	CMSURL      string
	APIToken    string
	FixturesDir string
	Panel       string
	SearchLimit string
}

func answersFrom(cfg dealitconfig.Config) initAnswers {
	return initAnswers{
		CMSURL:      cfg.CMSURL,
		APIToken:    cfg.APIToken,
		FixturesDir: cfg.FixturesDir,
		Panel:       cfg.Panel,
		SearchLimit: strconv.Itoa(cfg.SearchLimit),
	}
}

// apply writes the answers over cfg and normalizes the result.
func (a initAnswers) apply(cfg dealitconfig.Config) (dealitconfig.Config, error) {
	cfg.CMSURL = a.CMSURL
	cfg.APIToken = a.APIToken
	cfg.FixturesDir = a.FixturesDir
	cfg.Panel = a.Panel
	if s := strings.TrimSpace(a.SearchLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("search limit %q: %w", s, err)
		}
		cfg.SearchLimit = n
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if !cfg.Offline() && cfg.CMSURL == "" {
		return cfg, errors.New("set a CMS URL or a fixtures directory")
	}
	return cfg, nil
}

func validateCMSURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("want http(s)://host")
	}
	return nil
}

func validateSearchLimit(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 1 {
		return errors.New("want a positive number")
	}
	return nil
}

func buildInitForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("CMS URL").
				Description("Base URL of the CMS, e.g. https://cms.example.com").
				Placeholder("https://").
				Validate(validateCMSURL).
				Value(&a.CMSURL),
			huh.NewInput().
				Title("API token").
				Description("Bearer token for the CMS API (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&a.APIToken),
			huh.NewInput().
				Title("Fixtures directory").
				Description("Read JSON fixtures instead of the CMS (optional)").
				Value(&a.FixturesDir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Merchant sidebar").
				Options(
					huh.NewOption("Auto (wide terminals)", dealitconfig.PanelAuto),
					huh.NewOption("Always show", dealitconfig.PanelShow),
					huh.NewOption("Never show", dealitconfig.PanelHide),
				).
				Value(&a.Panel),
			huh.NewInput().
				Title("Search results").
				CharLimit(3).
				Validate(validateSearchLimit).
				Value(&a.SearchLimit),
		),
	).WithTheme(huh.ThemeFunc(huh.ThemeCatppuccin)).
		WithWidth(64)
}

func (a *app) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the config file interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dealitconfig.LoadFrom(a.configPath)
			if err != nil {
				// Start over from defaults when the existing file is invalid.
				cfg = dealitconfig.Default()
			}

			answers := answersFrom(cfg)
			if err := buildInitForm(&answers).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return fmt.Errorf("init form: %w", err)
			}

			cfg, err = answers.apply(cfg)
			if err != nil {
				return err
			}
			if err := cfg.Save(a.configPath); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", a.configPath)
			return err
		},
	}
}
