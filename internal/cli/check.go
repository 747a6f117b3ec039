package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/gfshare/internal/validation"
	"github.com/Davincible/gfshare/pkg/crypto/shamir"
)

var ErrIncompatibleShares = errors.New("shares cannot be combined")

type ShareCheck struct {
	Index int    `json:"index"`
	Bytes int    `json:"bytes,omitempty"`
	Error string `json:"error,omitempty"`
}

type CheckResult struct {
	Shares     []ShareCheck `json:"shares"`
	Compatible bool         `json:"compatible"`
	Problem    string       `json:"problem,omitempty"`
	Threshold  int          `json:"threshold,omitempty"`
}

// NewCheckCommand creates a command to check share compatibility
func NewCheckCommand() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "check [share...]",
		Short: "Check if shares are compatible for recovery",
		Long: `Analyzes shares without recovering anything: each share must decode,
all shares must have the same length, and no two shares may use the same
x coordinate at any byte position.

The threshold is only known when checking a share file.`,
		Example: `  # Check shares interactively
  gfshare check

  # Check specific shares
  gfshare check 01ab... 7f02...

  # Check a share file
  gfshare check --input shares.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			p := newPrompter(cmd)

			var result CheckResult
			var shares []shamir.Share

			switch {
			case inputFile != "":
				stored, loaded, err := loadShareFile(p, inputFile)
				if err != nil {
					return err
				}
				shares, result.Threshold = loaded, stored.Threshold
				for i, share := range shares {
					result.Shares = append(result.Shares, ShareCheck{Index: i + 1, Bytes: share.Len()})
				}
			case len(args) > 0:
				shares, result.Shares = checkShareStrings(args)
			default:
				shares, err = p.readShares()
				if err != nil {
					return err
				}
				for i, share := range shares {
					result.Shares = append(result.Shares, ShareCheck{Index: i + 1, Bytes: share.Len()})
				}
			}

			switch {
			case len(shares) != len(result.Shares):
				result.Problem = "some shares could not be decoded"
			case len(shares) < 2 && result.Threshold == 0:
				result.Problem = "need at least 2 shares to check compatibility"
			default:
				if err := validation.ValidateShareSet(shares); err != nil {
					result.Problem = err.Error()
				}
			}
			result.Compatible = result.Problem == ""

			if useJSON(cmd, cfg) {
				if err := outputJSONResult(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				displayCheck(cmd.OutOrStdout(), result, len(shares))
			}

			if !result.Compatible {
				return fmt.Errorf("%w: %s", ErrIncompatibleShares, result.Problem)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Share file written by 'gfshare split --output'")

	return cmd
}

// checkShareStrings decodes every argument, keeping the successful ones.
func checkShareStrings(args []string) ([]shamir.Share, []ShareCheck) {
	shares := make([]shamir.Share, 0, len(args))
	checks := make([]ShareCheck, len(args))

	for i, arg := range args {
		checks[i].Index = i + 1

		share, err := validation.ParseShare(arg)
		if err != nil {
			checks[i].Error = err.Error()
			continue
		}

		checks[i].Bytes = share.Len()
		shares = append(shares, share)
	}

	return shares, checks
}

func displayCheck(w io.Writer, result CheckResult, valid int) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "SHARE COMPATIBILITY CHECKER")
	fmt.Fprintln(w, "="+strings.Repeat("=", 40))
	fmt.Fprintln(w)

	for _, share := range result.Shares {
		if share.Error != "" {
			red.Fprintf(w, "Share %d: ❌ Invalid - %s\n", share.Index, share.Error)
			continue
		}
		green.Fprintf(w, "Share %d: ✓ Valid (%d secret bytes)\n", share.Index, share.Bytes)
	}

	fmt.Fprintln(w)

	if !result.Compatible {
		red.Fprintln(w, "❌ INCOMPATIBLE SHARES")
		fmt.Fprintln(w, result.Problem)
		return
	}

	green.Fprintln(w, "✅ SHARES ARE COMPATIBLE")

	if result.Threshold == 0 {
		fmt.Fprintln(w)
		yellow.Fprintln(w, "⚠️  The threshold is not stored in shares.")
		fmt.Fprintf(w, "Recovery needs at least the threshold chosen at split time; %d shares are present.\n", valid)
		return
	}

	fmt.Fprintf(w, "Need: %d shares\n", result.Threshold)
	fmt.Fprintf(w, "Have: %d shares\n", valid)
	if valid >= result.Threshold {
		green.Fprintln(w, "\n✅ SUFFICIENT SHARES FOR RECOVERY!")
	} else {
		red.Fprintf(w, "\n❌ INSUFFICIENT SHARES\n")
		fmt.Fprintf(w, "Need %d more share(s) for recovery.\n", result.Threshold-valid)
	}
}
