package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/domaintint/internal/banner"
	"github.com/jmylchreest/domaintint/internal/domain"
	"github.com/jmylchreest/domaintint/internal/pattern"
	"github.com/jmylchreest/domaintint/internal/resolver"
)

// Output formats for resolve.
const (
	formatText = "text"
	formatJSON = "json"
)

var (
	errNoHostname = errors.New("no hostname")
	errFiltered   = errors.New("one or more hostnames are filtered out")
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <hostname|url>...",
		Short: "Show the banner colour for hostnames",
		Long: `Resolve the banner colour for one or more hostnames or URLs.

The colour comes from an exact override, the first matching coloured
pattern, or the hostname hash, in that order. The domain mode is not
consulted; use --format json to see the banner message including hide
decisions.

Examples:
  # Colour for a hostname
  domaintint resolve example.com

  # Colours for URLs with a swatch preview
  domaintint resolve --preview https://mail.example.com/inbox github.com

  # Banner messages as JSON
  domaintint resolve --format json example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts, err := hostnames(args)
			if err != nil {
				return err
			}
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch format {
			case formatJSON:
				msgs := make([]banner.Message, 0, len(hosts))
				for _, h := range hosts {
					msg, _ := banner.Compute(h, s)
					msgs = append(msgs, msg)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(msgs)

			case formatText:
				showSwatch := preview && isTerminal(out)
				headers := []string{"HOSTNAME", "COLOR", "TEXT", "HEX", "CONTRAST", "SOURCE"}
				if showSwatch {
					headers = append(headers, "PREVIEW")
				}
				table := NewTable(headers...)
				for _, h := range hosts {
					res := resolver.Resolve(h, s)
					a.logger.Debug("resolved", "hostname", h, "rgb", res.HSL.RGB().String(), "source", res.Source)
					row := []string{h, res.Color, res.TextColor, res.Hex(), describeContrast(res), describeSource(res)}
					if showSwatch {
						row = append(row, swatch(res.Hex(), res.TextColor, s.BannerText))
					}
					table.AddRow(row...)
				}
				fmt.Fprint(out, table.Render())
				return nil

			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show a colour swatch when writing to a terminal")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <hostname|url>...",
		Short: "Report whether hostnames pass the domain filter",
		Long: `Check hostnames or URLs against the domain mode and pattern list.

In allowlist mode only hostnames matching a pattern get a banner; in
blocklist mode matching hostnames are suppressed; in all mode every
hostname gets one.

Examples:
  domaintint check example.com staging.internal

  # Exit non-zero when anything is filtered
  domaintint check --strict https://prod.example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts, err := hostnames(args)
			if err != nil {
				return err
			}
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			table := NewTable("HOSTNAME", "MODE", "STATUS", "MATCHED")
			filtered := 0
			for _, h := range hosts {
				status := "allowed"
				if !domain.IsAllowed(h, s.DomainMode, s.DomainPatterns) {
					status = "filtered"
					filtered++
				}
				matched := "-"
				if p, ok := pattern.Default().First(h, s.DomainPatterns); ok {
					matched = p
				}
				table.AddRow(h, string(s.DomainMode), status, matched)
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())

			if strict && filtered > 0 {
				return errFiltered
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any hostname is filtered")
	return cmd
}

// hostnames turns arguments into hostnames. Anything with a scheme is parsed
// as a URL; bare arguments are lower-cased hostnames.
func hostnames(args []string) ([]string, error) {
	hosts := make([]string, 0, len(args))
	for _, arg := range args {
		h := strings.ToLower(strings.TrimSpace(arg))
		if strings.Contains(arg, "://") || strings.HasPrefix(arg, "about:") {
			h = banner.ExtractHostname(arg)
		}
		if h == "" {
			return nil, fmt.Errorf("%w in %q", errNoHostname, arg)
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

func describeSource(res resolver.Resolution) string {
	if res.Source == resolver.SourcePattern {
		return fmt.Sprintf("%s (%s)", res.Source, res.Pattern)
	}
	return string(res.Source)
}

func describeContrast(res resolver.Resolution) string {
	ratio, ok := res.Contrast()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f:1", ratio)
}

func swatch(bg, fg, text string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1).
		Inline(true).
		Render(text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
