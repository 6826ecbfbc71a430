// Command floatcp is a small demonstration driver for the precision
// boundary subsystem: it runs the strict-window scenario end to end and
// exposes ULP inspection for individual values.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gitrdm/floatcp/pkg/floatcp"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "floatcp",
	Short: "Precision-aware constraint boundary tools",
	Long: "floatcp demonstrates bit-exact boundary optimization for floating-point\n" +
		"CSP variables: strict inequality bounds are moved to their nearest\n" +
		"representable neighbors instead of being approximated with an epsilon.",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the strict-window propagation scenario",
	RunE:  runDemo,
}

var ulpCmd = &cobra.Command{
	Use:   "ulp <value>",
	Short: "Print neighbor and gap information for a double",
	Args:  cobra.ExactArgs(1),
	RunE:  runUlp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(ulpCmd)
}

func loadConfig() (floatcp.Config, error) {
	if configPath == "" {
		return floatcp.DefaultConfig(), nil
	}
	return floatcp.LoadConfig(configPath)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := floatcp.NewFloatStore()
	x := store.NewVar()

	reg := floatcp.NewConstraintRegistry()
	reg.Register(floatcp.GreaterThan(x.ID, 3.0))
	reg.Register(floatcp.LessThan(x.ID, 5.0))

	opt := floatcp.NewPrecisionOptimizerWithConfig(cfg)
	prop := floatcp.NewBoundaryPropagator(reg, opt, store)
	prop.SetEnabled(cfg.Enabled)
	prop.SetLogger(logger)
	monitor := floatcp.NewPropagationMonitor()
	prop.SetMonitor(monitor)

	fmt.Println("constraints: x > 3.0, x < 5.0")
	if err := prop.Propagate([]floatcp.VariableID{x.ID}); err != nil {
		return fmt.Errorf("propagation: %w", err)
	}

	dom, _ := store.Domain(x.ID)
	fmt.Printf("domain after propagation: [%v, %v]\n", dom.Lo, dom.Hi)
	fmt.Printf("excludes 3.0: %v, excludes 5.0: %v\n", !dom.Contains(3.0), !dom.Contains(5.0))
	fmt.Println()

	// An admissible window can be empty even when the raw bounds are not.
	y := store.NewVar()
	reg.Register(floatcp.GreaterThan(y.ID, 5.0))
	reg.Register(floatcp.LessThan(y.ID, floatcp.NextRepresentable(5.0)))

	fmt.Println("constraints: y > 5.0, y < NextRepresentable(5.0)")
	if err := prop.Propagate([]floatcp.VariableID{y.ID}); err != nil {
		fmt.Printf("contradiction, as expected: %v\n", err)
	}

	fmt.Println()
	fmt.Println(monitor.GetStats())
	stats := opt.Stats()
	fmt.Printf("optimizer: %d adjustments, %d cache hits, %d cache misses\n",
		stats.PrecisionAdjustments, stats.CacheHits, stats.CacheMisses)
	return nil
}

func runUlp(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parse value: %w", err)
	}

	fmt.Printf("value: %v\n", v)
	fmt.Printf("ulp:   %v\n", floatcp.Ulp(v))
	fmt.Printf("next:  %v\n", floatcp.NextRepresentable(v))
	fmt.Printf("prev:  %v\n", floatcp.PrevRepresentable(v))
	fmt.Printf("looks user-authored: %v\n", floatcp.ClassifyBound(v) == floatcp.OriginUserAuthored)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
