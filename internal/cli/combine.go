package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/gfshare/internal/validation"
	"github.com/Davincible/gfshare/pkg/crypto/mnemonic"
	"github.com/Davincible/gfshare/pkg/crypto/shamir"
	"github.com/Davincible/gfshare/pkg/secure"
)

type CombineResult struct {
	Hex      string `json:"hex"`
	Text     string `json:"text,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty"`
	Shares   int    `json:"shares"`
}

func NewCombineCommand() *cobra.Command {
	var (
		inputFile  string
		toMnemonic bool
		outputHex  bool
	)

	cmd := &cobra.Command{
		Use:   "combine [share...]",
		Short: "Combine shares to recover the secret",
		Long: `Combine shares created by 'gfshare split' to recover the original secret.

Shares are read from the arguments, from a share file (--input), or
interactively one per line in hex or base64.

The threshold is not stored in the shares. Combining fewer shares than the
threshold produces output of the right length that is NOT the secret, and
no error is reported.`,
		Example: `  # Combine shares interactively
  gfshare combine

  # Combine from a share file (prompts for the password if encrypted)
  gfshare combine --input shares.json

  # Recover a BIP39 phrase split with --mnemonic
  gfshare combine --mnemonic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			p := newPrompter(cmd)

			var shares []shamir.Share
			threshold := 0

			switch {
			case inputFile != "":
				stored, loaded, err := loadShareFile(p, inputFile)
				if err != nil {
					return err
				}
				shares, threshold = loaded, stored.Threshold
			case len(args) > 0:
				shares, err = parseShareArgs(args)
				if err != nil {
					return err
				}
			default:
				shares, err = p.readShares()
				if err != nil {
					return err
				}
			}

			if threshold > 0 && len(shares) < threshold {
				return fmt.Errorf("share file needs %d shares, only %d present", threshold, len(shares))
			}

			if err := validation.ValidateShareSet(shares); err != nil {
				return err
			}

			secret, err := newSharer(cfg.Defaults.Workers).Recover(shares)
			if err != nil {
				return fmt.Errorf("failed to recover secret: %w", err)
			}
			defer secure.Zero(secret)

			result := CombineResult{
				Hex:    hex.EncodeToString(secret),
				Shares: len(shares),
			}

			if toMnemonic {
				m, err := mnemonic.FromEntropy(secret)
				if err != nil {
					return fmt.Errorf("recovered secret is not mnemonic entropy (too few shares?): %w", err)
				}
				result.Mnemonic = m.Words()
			} else if utf8.Valid(secret) {
				result.Text = string(secret)
			}

			if useJSON(cmd, cfg) {
				return outputJSONResult(cmd.OutOrStdout(), result)
			}

			displayRecovered(cmd.OutOrStdout(), result, outputHex)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Share file written by 'gfshare split --output'")
	cmd.Flags().BoolVar(&toMnemonic, "mnemonic", false, "Print the secret as a BIP39 mnemonic phrase")
	cmd.Flags().BoolVar(&outputHex, "hex", false, "Output only as hexadecimal")

	return cmd
}

func displayRecovered(w io.Writer, result CombineResult, hexOnly bool) {
	if hexOnly {
		fmt.Fprintln(w, result.Hex)
		return
	}

	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	green.Fprintf(w, "✓ Combined %d shares\n", result.Shares)
	fmt.Fprintln(w)

	switch {
	case result.Mnemonic != "":
		cyan.Fprintln(w, "Mnemonic:")
		fmt.Fprintln(w, result.Mnemonic)
	case result.Text != "":
		cyan.Fprintln(w, "Secret (text):")
		fmt.Fprintln(w, result.Text)
		fmt.Fprintln(w)
		cyan.Fprintln(w, "Secret (hex):")
		fmt.Fprintln(w, result.Hex)
	default:
		cyan.Fprintln(w, "Secret (hex):")
		fmt.Fprintln(w, result.Hex)
	}
}
