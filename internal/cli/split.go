package cli

import (
	"encoding/json"
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/gfshare/internal/validation"
	"github.com/Davincible/gfshare/pkg/config"
	"github.com/Davincible/gfshare/pkg/crypto/mnemonic"
	"github.com/Davincible/gfshare/pkg/crypto/shamir"
	"github.com/Davincible/gfshare/pkg/secure"
	"github.com/Davincible/gfshare/pkg/storage"
)

type ShareFormats struct {
	Hex    string `json:"hex"`
	Base64 string `json:"base64"`
}

type SplitResult struct {
	Shares    []ShareFormats `json:"shares"`
	Threshold int            `json:"threshold"`
	Total     int            `json:"total"`
	Verified  bool           `json:"verified"`
	File      string         `json:"file,omitempty"`
}

func NewSplitCommand() *cobra.Command {
	var (
		parts        int
		threshold    int
		workers      int
		useStdin     bool
		raw          bool
		fromMnemonic bool
		encrypt      bool
		force        bool
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into multiple shares",
		Long: `Split a secret (raw data or a BIP39 seed phrase) into shares using
Shamir's Secret Sharing over GF(2^8). Any threshold number of shares
reconstruct the secret; fewer reveal nothing about it.

Every share is twice the length of the secret: one (x, y) byte pair per
secret byte. Shares are printed in hex and in base64 tagged "b64:"; either
form is accepted by 'gfshare combine'.

--stdin strips trailing newlines (CR and LF) so that 'echo' and heredocs
behave. Add --raw to keep every byte, as binary secrets need.

With --mnemonic the phrase is converted to its entropy before splitting,
and 'gfshare combine --mnemonic' turns the recovered entropy back into words.`,
		Example: `  # Split a mnemonic into 5 shares with threshold 3
  gfshare split --parts 5 --threshold 3 --mnemonic

  # Split raw data from stdin
  echo "secret data" | gfshare split -n 3 -t 2 --stdin

  # Split a binary key byte for byte
  gfshare split -n 3 -t 2 --stdin --raw < key.bin

  # Write an encrypted share file
  gfshare split -n 5 -t 3 --output shares.json --encrypt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("parts") {
				parts = cfg.Defaults.Shares
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Defaults.Threshold
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Defaults.Workers
			}

			if err := validation.ValidateSplitParams(parts, threshold); err != nil {
				return err
			}

			encrypt = encrypt || cfg.Security.EncryptShareFiles
			if encrypt && outputFile == "" {
				return fmt.Errorf("--encrypt requires --output")
			}
			if raw && !useStdin {
				return fmt.Errorf("--raw requires --stdin")
			}
			if encrypt && useStdin {
				return fmt.Errorf("--encrypt cannot be combined with --stdin: the password is read from stdin")
			}

			if outputFile != "" && !force && storage.NewShareStorage(outputFile).Exists() {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outputFile)
			}

			p := newPrompter(cmd)

			var secret []byte
			switch {
			case useStdin:
				secret, err = readFromStdin(cmd.InOrStdin(), raw)
			case fromMnemonic:
				secret, err = readMnemonicInteractive(p)
			default:
				secret, err = p.readHidden("Enter your secret: ")
			}
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			defer secure.Zero(secret)

			if len(secret) == 0 {
				return fmt.Errorf("secret cannot be empty")
			}

			sharer := newSharer(workers)
			shares, err := sharer.Split(secret, shamir.Config{
				Parts:     parts,
				Threshold: threshold,
			})
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			result := SplitResult{
				Shares:    make([]ShareFormats, len(shares)),
				Threshold: threshold,
				Total:     parts,
			}

			if cfg.Security.AutoVerify {
				if err := verifyShares(sharer, shares[:threshold], secret); err != nil {
					return err
				}
				result.Verified = true
			}

			for i, share := range shares {
				result.Shares[i] = ShareFormats{
					Hex:    share.Hex(),
					Base64: share.Base64(),
				}
			}

			if outputFile != "" {
				if err := saveShares(p, cfg, outputFile, shares, threshold, encrypt); err != nil {
					return err
				}
				result.File = outputFile

				if !useJSON(cmd, cfg) {
					color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Shares saved to %s\n", outputFile)
					return nil
				}
			}

			if useJSON(cmd, cfg) {
				return outputJSONResult(cmd.OutOrStdout(), result)
			}

			return outputTextResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 3, "Total number of shares to create (1-254)")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "Minimum shares needed to reconstruct")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Goroutines used to split the secret")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read secret from stdin, without trailing newlines")
	cmd.Flags().BoolVar(&raw, "raw", false, "With --stdin, keep trailing newline bytes")
	cmd.Flags().BoolVar(&fromMnemonic, "mnemonic", false, "Input is a BIP39 mnemonic phrase")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write shares to a share file")
	cmd.Flags().BoolVarP(&encrypt, "encrypt", "e", false, "Encrypt the share file with a password")
	cmd.Flags().BoolVar(&force, "force", false, "Wipe and replace an existing share file")

	return cmd
}

// verifyShares recovers from exactly threshold shares and compares the result
// with the original secret.
func verifyShares(sharer *shamir.Sharer, shares []shamir.Share, secret []byte) error {
	recovered, err := sharer.Recover(shares)
	if err != nil {
		return fmt.Errorf("failed to verify shares: %w", err)
	}
	defer secure.Zero(recovered)

	if !secure.ConstantTimeCompare(recovered, secret) {
		return fmt.Errorf("failed to verify shares: recovered secret does not match")
	}
	return nil
}

func saveShares(p *prompter, cfg *config.Config, path string, shares []shamir.Share, threshold int, encrypt bool) error {
	var password []byte
	if encrypt {
		var err error
		password, err = p.readNewPassphrase(cfg.Security.MinPasswordLength)
		if err != nil {
			return err
		}
		defer secure.Zero(password)
	}

	store := storage.NewShareStorage(path)
	store.SetKDFParams(kdfParams(cfg))

	// old shares of a different secret must not survive on disk
	if store.Exists() {
		if err := store.Delete(); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", path, err)
		}
	}

	if err := store.SaveShares(shares, threshold, password); err != nil {
		return fmt.Errorf("failed to save shares: %w", err)
	}
	return nil
}

// readFromStdin reads all of r. Unless raw is set, trailing CR and LF bytes
// are dropped.
func readFromStdin(r io.Reader, raw bool) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if raw {
		return data, nil
	}
	return bytes.TrimRight(data, "\r\n"), nil
}

func readMnemonicInteractive(p *prompter) ([]byte, error) {
	input, err := p.readLine("Enter your mnemonic phrase (12-24 words): ")
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateMnemonic(input); err != nil {
		return nil, err
	}

	m, err := mnemonic.FromWords(input)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	return m.Entropy()
}

func outputJSONResult(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputTextResult(w io.Writer, result SplitResult) error {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	blue := color.New(color.FgBlue, color.Bold)

	fmt.Fprintln(w)
	yellow.Fprintln(w, "=== SHAMIR SECRET SHARES ===")
	fmt.Fprintln(w)

	green.Fprintf(w, "Created %d shares with threshold %d\n", result.Total, result.Threshold)
	fmt.Fprintf(w, "Any %d shares can reconstruct the original secret\n", result.Threshold)
	if result.Verified {
		green.Fprintf(w, "✓ Verified recovery from %d shares\n", result.Threshold)
	}
	fmt.Fprintln(w)

	red.Fprintln(w, "⚠️  SECURITY WARNING:")
	fmt.Fprintln(w, "- Store each share in a different secure location")
	fmt.Fprintln(w, "- Never store shares together or electronically")
	fmt.Fprintf(w, "- Fewer than %d shares recover garbage without any error\n", result.Threshold)
	fmt.Fprintln(w)

	for i, share := range result.Shares {
		fmt.Fprintf(w, "Share %d of %d:\n", i+1, result.Total)
		fmt.Fprintln(w)

		cyan.Fprint(w, "  Hex:    ")
		fmt.Fprintln(w, share.Hex)

		blue.Fprint(w, "  Base64: ")
		fmt.Fprintln(w, share.Base64)

		fmt.Fprintln(w)
	}

	yellow.Fprintln(w, "=== END OF SHARES ===")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Note: Both formats (hex, b64:base64) represent the same share.")
	fmt.Fprintln(w, "Use either format when reconstructing the secret.")

	return nil
}
