package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	libraryrender "github.com/bnema/audiolib/internal/adapters/render/library"
	"github.com/bnema/audiolib/internal/application"
	"github.com/bnema/audiolib/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errCheckFailed = errors.New("library check failed")

func newLibraryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and edit audio libraries",
	}

	cmd.AddCommand(
		newLibraryListCmd(app),
		newLibraryKeysCmd(app),
		newLibraryInheritedCmd(app),
		newLibraryShowCmd(app),
		newLibraryCheckCmd(app),
		newLibrarySetCmd(app),
	)

	return cmd
}

func newLibraryListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured libraries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.libraries.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]application.LibraryView, 0, len(catalog.Libraries()))
			for _, lib := range catalog.Libraries() {
				view, err := app.libraries.Describe(cmd.Context(), lib.ID())
				if err != nil {
					return err
				}
				views = append(views, view)
			}

			rendered, err := app.libraryRenderer(views, libraryrender.RenderOptions{Summary: true})
			if err != nil {
				return fmt.Errorf("render libraries: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newLibraryKeysCmd(app *app) *cobra.Command {
	var libraryID string
	var inherited bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the keys of a library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := app.libraries.Keys(cmd.Context(), domain.LibraryID(libraryID), inherited)
			if err != nil {
				return err
			}

			for _, key := range keys {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryID, "library", "", "Library ID")
	cmd.Flags().BoolVar(&inherited, "inherited", false, "Include keys inherited from parent libraries")
	_ = cmd.MarkFlagRequired("library")

	return cmd
}

func newLibraryInheritedCmd(app *app) *cobra.Command {
	var libraryID string

	cmd := &cobra.Command{
		Use:   "inherited",
		Short: "Print keys a library inherits without overriding",
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, hasParent, err := app.libraries.InheritedKeys(cmd.Context(), domain.LibraryID(libraryID))
			if err != nil {
				return err
			}
			if !hasParent {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "library %s has no parent\n", libraryID)
				return nil
			}

			for _, key := range keys {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryID, "library", "", "Library ID")
	_ = cmd.MarkFlagRequired("library")

	return cmd
}

func newLibraryShowCmd(app *app) *cobra.Command {
	var libraryID string
	var asJSON bool
	var asYAML bool
	var localOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show every key a library resolves and where it comes from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.libraries.Describe(cmd.Context(), domain.LibraryID(libraryID))
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			case asYAML:
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(view); err != nil {
					return err
				}
				return enc.Close()
			}

			rendered, err := app.libraryRenderer([]application.LibraryView{view}, libraryrender.RenderOptions{LocalOnly: localOnly})
			if err != nil {
				return fmt.Errorf("render library: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&libraryID, "library", "", "Library ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Render YAML output")
	cmd.Flags().BoolVar(&localOnly, "local", false, "Hide inherited keys")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	_ = cmd.MarkFlagRequired("library")

	return cmd
}

func newLibraryCheckCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report authoring problems in the configured libraries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			issues, err := app.libraries.Check(cmd.Context())
			if err != nil {
				return err
			}

			if len(issues) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: no issues\n", app.librariesPath)
				return nil
			}

			errorCount := 0
			for _, issue := range issues {
				if issue.Severity == application.SeverityError {
					errorCount++
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatIssue(issue))
			}

			if errorCount > 0 {
				return fmt.Errorf("%w: %d error(s)", errCheckFailed, errorCount)
			}
			return nil
		},
	}
}

func formatIssue(issue application.Issue) string {
	location := string(issue.Library)
	if issue.Key != "" {
		location += "/" + issue.Key
	}
	if location == "" {
		return fmt.Sprintf("%s: %s", issue.Severity, issue.Message)
	}
	return fmt.Sprintf("%s: %s: %s", issue.Severity, location, issue.Message)
}

func newLibrarySetCmd(app *app) *cobra.Command {
	var (
		libraryID string
		key       string
		clips     []string
		selection string
		volume    float64
		route     string
		delay     time.Duration
		parent    string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Add or replace a key in a library, creating the library if needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			id := domain.LibraryID(libraryID)

			cfg, err := app.libraries.Config(ctx, id)
			if errors.Is(err, domain.ErrLibraryNotFound) {
				cfg, err = domain.LibraryConfig{ID: id, Master: true}, nil
			}
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				cfg.Name = name
			}
			if cmd.Flags().Changed("parent") {
				cfg.Parent = domain.LibraryID(parent)
				cfg.Master = parent == ""
			}

			entry := domain.Entry{
				Key:         strings.TrimSpace(key),
				Mode:        domain.SelectionMode(selection),
				VolumeScale: volume,
				Route:       domain.RouteID(route),
				Delay:       delay,
			}
			for _, clip := range clips {
				entry.Clips = append(entry.Clips, domain.ClipID(clip))
			}

			replaced := false
			for i := range cfg.Entries {
				if cfg.Entries[i].Key == entry.Key {
					cfg.Entries[i] = entry
					replaced = true
					break
				}
			}
			if !replaced {
				cfg.Entries = append(cfg.Entries, entry)
			}

			if err := app.libraries.SaveLibrary(ctx, cfg); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s/%s (%d clips)\n", cfg.ID, entry.Key, len(entry.Clips))
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryID, "library", "", "Library ID")
	cmd.Flags().StringVar(&key, "key", "", "Entry key")
	cmd.Flags().StringSliceVar(&clips, "clip", nil, "Clip name (repeatable)")
	cmd.Flags().StringVar(&selection, "selection", string(domain.SelectionRandom), "Clip selection: random or sequential")
	cmd.Flags().Float64Var(&volume, "volume", 1, "Volume scale in [0,1]")
	cmd.Flags().StringVar(&route, "route", "", "Mixer route")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Playback delay")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent library ID; empty makes the library a master")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("library")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
