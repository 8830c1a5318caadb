// The Pill — is this stock a buy?
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thepill/thepill/api"
	"github.com/thepill/thepill/internal/agent"
	"github.com/thepill/thepill/internal/config"
	"github.com/thepill/thepill/internal/llm"
	"github.com/thepill/thepill/internal/providers/finnhub"
	"github.com/thepill/thepill/internal/providers/sec"
	"github.com/thepill/thepill/internal/providers/yfinance"
	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config, loaded before any command runs.
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "thepill",
	Short: "The Pill — is this stock a buy?",
	Long: `The Pill
An LLM-agent stock analysis service that works a ticker through the
Shkreli Method: earnings power, cash flow truth, balance sheet
liquidity, qualitative checks, and a final verdict.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional and never overrides real environment variables.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(filingCmd)
	rootCmd.AddCommand(filingsCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger configures and returns the process logger. The standard
// logrus logger is used so package-level debug logging (infra's upstream
// GET lines) honors the configured level too.
func newLogger() *logrus.Logger {
	logger := logrus.StandardLogger()
	if lvl, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// buildAnalyzer wires the model router, data clients, and toolset into a
// ready analysis agent. It fails when no Anthropic key is configured.
func buildAnalyzer(logger *logrus.Logger) (*agent.Analyzer, error) {
	router, err := llm.NewRouterFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	tools := agent.NewToolset(
		yfinance.New(),
		finnhub.New(cfg.Finnhub.APIKey),
		sec.New(cfg.SEC.UserAgent),
	)

	return agent.New(router, tools, agent.Config{
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		MaxTurns:  cfg.Analysis.MaxTurns,
	}, logger), nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("The Pill %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (HTTP server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := newLogger()
		analyzer, err := buildAnalyzer(logger)
		if err != nil {
			return err
		}

		api.Version = version
		srv := api.NewServer(cfg, analyzer, logger)

		fmt.Printf("💊 The Pill listening on http://%s:%d\n", cfg.API.Host, cfg.API.Port)
		return srv.ListenAndServe()
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Run the full Shkreli Method analysis on a stock",
	Long: `Run the complete analysis loop for one ticker and print the verdict.

Progress lines go to stderr so the markdown on stdout can be piped:
  thepill analyze AAPL > aapl.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ticker := utils.NormalizeTicker(args[0])
		asJSON, _ := cmd.Flags().GetBool("json")

		analyzer, err := buildAnalyzer(newLogger())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var runErr error
		for ev := range analyzer.AnalyzeStream(ctx, ticker) {
			if asJSON {
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Println(string(data))
				if ev.Type == agent.EventError {
					runErr = errors.New(ev.Message)
				}
				continue
			}

			switch ev.Type {
			case agent.EventStatus:
				fmt.Fprintf(os.Stderr, "· %s\n", ev.Message)
			case agent.EventContent:
				fmt.Println(ev.Text)
			case agent.EventError:
				runErr = errors.New(ev.Message)
			}
		}
		return runErr
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "emit raw event JSON lines instead of formatted output")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and credential status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  The Pill — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:  %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Model:        %s\n", cfg.LLM.Model)
		fmt.Printf("    Max turns:    %d\n", cfg.Analysis.MaxTurns)
		fmt.Printf("    HTTP server:  %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    SEC agent:    %s\n", cfg.SEC.UserAgent)
		fmt.Printf("    Market:       %s\n", utils.MarketStatus())
		fmt.Println()

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			} else if !k.Required {
				status += " (optional)"
			}
			fmt.Printf("    %-22s %s\n", k.Name+":", status)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Filing Command ---

var filingCmd = &cobra.Command{
	Use:   "filing [ticker]",
	Short: "Show the latest SEC filing and headline XBRL facts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])
		filingType, _ := cmd.Flags().GetString("type")

		client := sec.New(cfg.SEC.UserAgent)
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		filing, err := client.Filing(ctx, ticker, models.FilingType(filingType))
		if err != nil {
			return err
		}

		fmt.Printf("📄 %s (%s) — CIK %s\n", filing.CompanyName, filing.Ticker, filing.CIK)
		if filing.LatestFiling == nil {
			fmt.Printf("   No %s on file.\n", filingType)
			return nil
		}

		fmt.Printf("   Latest %s: filed %s (%s)\n",
			filing.LatestFiling.Form, filing.LatestFiling.FilingDate, filing.LatestFiling.AccessionNumber)
		fmt.Printf("   Shares outstanding:  %s\n", fmtFact(filing.SharesOutstanding))
		fmt.Printf("   Total assets:        %s\n", fmtFact(filing.TotalAssets))
		fmt.Printf("   Total liabilities:   %s\n", fmtFact(filing.TotalLiabilities))
		fmt.Printf("   Stockholders equity: %s\n", fmtFact(filing.StockholdersEquity))
		fmt.Printf("   EDGAR: %s\n", filing.SECURL)

		docs, err := client.FilingIndex(ctx, filing.CIK, filing.LatestFiling.AccessionNumber)
		if err != nil {
			fmt.Fprintf(os.Stderr, "document index unavailable: %v\n", err)
			return nil
		}

		fmt.Println("\n   Documents:")
		for _, d := range docs {
			fmt.Printf("     %-3s %-10s %s\n", d.Seq, d.Type, d.Document)
		}
		return nil
	},
}

func init() {
	filingCmd.Flags().String("type", "10-Q", "filing form type (10-Q or 10-K)")
}

// fmtFact renders an optional XBRL fact for terminal output.
func fmtFact(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", *v)
}

// --- Filings Command (Atom feed) ---

var filingsCmd = &cobra.Command{
	Use:   "filings [ticker]",
	Short: "List recent SEC filings from the EDGAR feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])
		filingType, _ := cmd.Flags().GetString("type")
		count, _ := cmd.Flags().GetInt("count")

		client := sec.New(cfg.SEC.UserAgent)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, err := client.RecentFilings(ctx, ticker, models.FilingType(filingType), count)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No %s filings found for %s.\n", filingType, ticker)
			return nil
		}

		fmt.Printf("📄 Recent %s filings for %s:\n", filingType, ticker)
		for _, e := range entries {
			fmt.Printf("  %s  %-24s %s\n", e.FilingDate, e.AccessionNumber, e.Link)
		}
		return nil
	},
}

func init() {
	filingsCmd.Flags().String("type", "10-K", "filing form type (10-Q or 10-K)")
	filingsCmd.Flags().Int("count", 10, "number of filings to list")
}

// --- Watch Command (live trades) ---

var watchCmd = &cobra.Command{
	Use:   "watch [ticker]...",
	Short: "Stream live trade prints from Finnhub",
	Long: `Stream live trades for one or more tickers over the Finnhub websocket.
Requires FINNHUB_API_KEY. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := finnhub.New(cfg.Finnhub.APIKey)
		if !client.Configured() {
			return finnhub.ErrNotConfigured
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("📡 Watching %v — Ctrl-C to stop\n", args)
		err := client.StreamTrades(ctx, args, func(tr models.Trade) {
			ts := time.UnixMilli(tr.Timestamp).Format("15:04:05")
			fmt.Printf("%s  %-8s %10.2f  x %.0f\n", ts, tr.Symbol, tr.Price, tr.Volume)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
