package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the gfshare command tree. --verbose lowers level to
// Debug before any subcommand runs.
func NewRootCommand(version string, level *slog.LevelVar) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gfshare",
		Short: "Shamir's Secret Sharing over GF(2^8)",
		Long: `gfshare splits a secret into shares so that any threshold of them
reconstruct it and fewer reveal nothing.

Each secret byte is shared with its own random polynomial over GF(2^8),
evaluated at x coordinates drawn independently for every byte position.

Features:
- Hex and base64 share encodings
- BIP39 mnemonic input and output
- Password-encrypted share files (argon2id + XChaCha20-Poly1305)
- Share compatibility checks without recovery`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && level != nil {
				level.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.AddCommand(
		NewSplitCommand(),
		NewCombineCommand(),
		NewCheckCommand(),
		NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default $GFSHARE_CONFIG or ~/.config/gfshare/config.json)")

	return rootCmd
}
