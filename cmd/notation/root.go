package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/workspace"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notation",
	Short: "Bind and evaluate math definitions.",
	Long: `Bind and evaluate definitions written the way people type math, like
"f(x) = ax_{mode}" or "y = 2πx". Free symbols become parameters with a
default value.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .notation.yaml in the working or home directory)")
	pf.BoolP("verbose", "v", false, "increase logging verbosity")
	pf.Bool("complex", false, "reserve i as the imaginary unit")
	pf.Bool("primes", false, "allow primed names like f'")
	pf.Uint("prec", 64, "precision of calculations in bits")
	pf.Float64("default", 1, "value of automatically created parameters")
	for _, k := range []string{"verbose", "complex", "primes", "prec", "default"} {
		if err := viper.BindPFlag(k, pf.Lookup(k)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads the config file and environment.
func initConfig() {
	cfg, _ := rootCmd.PersistentFlags().GetString("config")
	if cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".notation")
	}
	viper.SetEnvPrefix("NOTATION")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	var nf viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case errors.As(err, &nf) && cfg == "":
		// No config file is fine.
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debugf("config file: %q", viper.ConfigFileUsed())
}

// symbols creates the symbol table the configuration asks for.
func symbols() *notation.SymbolTable {
	var opts []notation.Option
	if viper.GetBool("complex") {
		opts = append(opts, notation.ComplexMode())
	}
	if viper.GetBool("primes") {
		opts = append(opts, notation.Primes())
	}
	return notation.NewSymbolTable(opts...)
}

// newWorkspace creates a workspace with the configured symbols, precision,
// and default value.
func newWorkspace() (*workspace.Workspace, error) {
	prec := viper.GetUint("prec")
	if prec == 0 || prec > big.MaxPrec {
		return nil, fmt.Errorf("precision %d out of range", prec)
	}
	ws := workspace.New(
		workspace.WithSymbols(symbols()),
		workspace.WithPrec(prec),
		workspace.WithDefaultValue(big.NewFloat(viper.GetFloat64("default"))),
	)
	return ws, nil
}
