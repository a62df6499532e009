package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/domaintint/internal/domain"
	"github.com/jmylchreest/domaintint/internal/settings"
)

var errNotFound = errors.New("not found")

func newOverrideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "override",
		Aliases: []string{"overrides"},
		Short:   "Manage exact-hostname colour overrides",
		Long: `Overrides pin a colour to one exact hostname. They win over patterns and
the hostname hash.

Examples:
  domaintint override add example.com '#ff0000'
  domaintint override list
  domaintint override rm example.com`,
	}

	add := &cobra.Command{
		Use:   "add <domain> <hex>",
		Short: "Set the colour for a hostname",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry settings.ColorEntry
			_, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				var err error
				entry, err = s.AddOverride(args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			a.logger.Info("override set", "domain", args[0], "color", entry.HSL.String())
			return nil
		},
	}

	rm := &cobra.Command{
		Use:     "rm <domain>",
		Aliases: []string{"remove"},
		Short:   "Remove the override for a hostname",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				if !s.RemoveOverride(args[0]) {
					return fmt.Errorf("override %q: %w", args[0], errNotFound)
				}
				return nil
			})
			if err != nil {
				return err
			}
			a.logger.Info("override removed", "domain", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List overrides",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			table := NewTable("DOMAIN", "COLOR", "TEXT", "HEX")
			domains := slices.Sorted(maps.Keys(s.Overrides))
			for _, d := range domains {
				table.AddRow(entryRow(d, s.Overrides[d])...)
			}
			return renderList(cmd.OutOrStdout(), table, "no overrides")
		},
	}

	cmd.AddCommand(add, rm, list)
	return cmd
}

func newPatternCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pattern",
		Aliases: []string{"patterns"},
		Short:   "Manage the domain pattern list",
		Long: `Domain patterns are matched against whole hostnames, case-insensitively.
"*" matches any run of characters, dots included; every other character is
literal. The list drives the allowlist and blocklist modes, and a pattern
with a colour colours the hostnames it matches. The first coloured pattern
in list order wins.

Examples:
  domaintint pattern add '*.example.com'
  domaintint pattern color '*.example.com' '#4095bf'
  domaintint pattern uncolor '*.example.com'
  domaintint pattern list`,
	}

	add := &cobra.Command{
		Use:   "add <pattern>",
		Short: "Append a pattern to the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added bool
			_, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				var err error
				added, err = s.AddPattern(args[0])
				return err
			})
			if err != nil {
				return err
			}
			if !added {
				a.logger.Info("pattern already present", "pattern", args[0])
				return nil
			}
			a.logger.Info("pattern added", "pattern", args[0])
			return nil
		},
	}

	rm := &cobra.Command{
		Use:     "rm <pattern>",
		Aliases: []string{"remove"},
		Short:   "Remove a pattern and its colour",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				if !s.RemovePattern(args[0]) {
					return fmt.Errorf("pattern %q: %w", args[0], errNotFound)
				}
				return nil
			})
			if err != nil {
				return err
			}
			a.logger.Info("pattern removed", "pattern", args[0])
			return nil
		},
	}

	color := &cobra.Command{
		Use:     "color <pattern> <hex>",
		Aliases: []string{"colour"},
		Short:   "Colour the hostnames a pattern matches",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry settings.ColorEntry
			_, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				var err error
				entry, err = s.SetPatternColor(args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			a.logger.Info("pattern colour set", "pattern", args[0], "color", entry.HSL.String())
			return nil
		},
	}

	uncolor := &cobra.Command{
		Use:     "uncolor <pattern>",
		Aliases: []string{"uncolour"},
		Short:   "Remove a pattern's colour but keep the pattern",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				if !s.ClearPatternColor(args[0]) {
					return fmt.Errorf("pattern colour %q: %w", args[0], errNotFound)
				}
				return nil
			})
			if err != nil {
				return err
			}
			a.logger.Info("pattern colour removed", "pattern", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List patterns in match order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			table := NewTable("#", "PATTERN", "COLOR", "TEXT", "HEX")
			table.SetColumnMaxWidth(1, 48)
			for i, p := range s.DomainPatterns {
				row := append([]string{strconv.Itoa(i + 1)}, entryRow(p, s.PatternColors[p])...)
				table.AddRow(row...)
			}
			return renderList(cmd.OutOrStdout(), table, "no patterns")
		},
	}

	cmd.AddCommand(add, rm, color, uncolor, list)
	return cmd
}

func newModeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [all|allowlist|blocklist]",
		Short:     "Show or set the domain mode",
		ValidArgs: []string{string(domain.ModeAll), string(domain.ModeAllowlist), string(domain.ModeBlocklist)},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				s, err := a.load(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.DomainMode)
				return nil
			}

			s, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				return s.SetMode(args[0])
			})
			if err != nil {
				return err
			}
			a.logger.Info("domain mode set", "mode", s.DomainMode)
			return nil
		},
	}
}

func newBannerCmd(a *app) *cobra.Command {
	var (
		text   string
		height int
	)

	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Show or set the banner text and height",
		Long: `Without flags, print the banner text and height. With --text or --height,
update them. An empty --text restores the default label.

Examples:
  domaintint banner
  domaintint banner --text "PRODUCTION" --height 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			textSet := cmd.Flags().Changed("text")
			heightSet := cmd.Flags().Changed("height")

			if !textSet && !heightSet {
				s, err := a.load(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "text:   %s\n", s.BannerText)
				fmt.Fprintf(out, "height: %dpx\n", s.BannerHeight)
				return nil
			}

			s, err := a.update(cmd.Context(), func(s *settings.Settings) error {
				if heightSet {
					if err := s.SetBannerHeight(height); err != nil {
						return err
					}
				}
				if textSet {
					s.SetBannerText(text)
				}
				return nil
			})
			if err != nil {
				return err
			}
			a.logger.Info("banner updated", "text", s.BannerText, "height", s.BannerHeight)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "banner label")
	cmd.Flags().IntVar(&height, "height", settings.DefaultBannerHeight, "banner height in pixels")
	return cmd
}

// entryRow formats a keyed colour entry; entries without a colour show "-".
func entryRow(key string, e settings.ColorEntry) []string {
	if !e.Present() {
		return []string{key, "-", "-", "-"}
	}
	return []string{key, e.HSL.String(), e.Text(), e.HSL.Hex()}
}

func renderList(w io.Writer, t *Table, empty string) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	_, err := fmt.Fprint(w, t.Render())
	return err
}
