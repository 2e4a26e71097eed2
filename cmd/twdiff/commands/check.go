package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/twdiff/internal/external/yahoo"
	"github.com/wonny/twdiff/pkg/config"
	"github.com/wonny/twdiff/pkg/database"
	"github.com/wonny/twdiff/pkg/httputil"
	"github.com/wonny/twdiff/pkg/logger"
	"github.com/wonny/twdiff/pkg/redis"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check config and connectivity",
	Long: `Loads the configuration and checks every configured backend.

이 명령어는:
- config 로드 및 검증
- Yahoo chart API 현재가 조회 (DEFAULT_CODE + 첫 번째 suffix)
- DATABASE_URL 이 있으면 PostgreSQL Ping + Pool 통계
- REDIS_ENABLED=true 이면 Redis 연결

Example:
  go run ./cmd/twdiff check
  go run ./cmd/twdiff check --config twdiff.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== twdiff connectivity check ===")

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}
	fmt.Fprintf(out, "✅ Config loaded (ENV: %s, PROVIDER: %s)\n", cfg.Env, cfg.Provider)

	log := newLogger(cfg, cmd.ErrOrStderr())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Yahoo.Timeout+10*time.Second)
	defer cancel()

	failed := 0
	for _, check := range []func(context.Context, io.Writer, *config.Config, *logger.Logger) error{
		checkYahoo, checkDatabase, checkRedis,
	} {
		if err := check(ctx, out, cfg, log); err != nil {
			fmt.Fprintf(out, "❌ %v\n", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, "\n✅ All checks passed!")
	return nil
}

func checkYahoo(ctx context.Context, out io.Writer, cfg *config.Config, log *logger.Logger) error {
	symbol := cfg.DefaultCode + cfg.Suffixes[0]
	fmt.Fprintf(out, "Querying %s for %s...\n", cfg.Yahoo.BaseURL, symbol)

	client := yahoo.NewClient(httputil.New(cfg, log).DisableRetry(), log, cfg.Yahoo.BaseURL)
	q, err := client.LastPrice(ctx, symbol)
	if err != nil {
		return fmt.Errorf("yahoo: %w", err)
	}
	fmt.Fprintf(out, "✅ Yahoo reachable (%s last price %.2f %s)\n", q.Symbol, q.Price, q.Currency)
	return nil
}

func checkDatabase(ctx context.Context, out io.Writer, cfg *config.Config, log *logger.Logger) error {
	if cfg.Database.URL == "" {
		fmt.Fprintln(out, "-  Database skipped (DATABASE_URL not set)")
		return nil
	}
	fmt.Fprintf(out, "Connecting to %s...\n", maskPassword(cfg.Database.URL))

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	status := db.HealthCheck(ctx)
	if !status.Healthy {
		return fmt.Errorf("database unhealthy: %s", status.Error)
	}

	fmt.Fprintln(out, "✅ Database healthy")
	fmt.Fprintf(out, "   Response Time: %v\n", status.ResponseTime)
	fmt.Fprintf(out, "   Total/Idle/Acquired Connections: %d/%d/%d\n", status.TotalConns, status.IdleConns, status.AcquiredConns)
	return nil
}

func checkRedis(ctx context.Context, out io.Writer, cfg *config.Config, log *logger.Logger) error {
	if !cfg.Redis.Enabled {
		fmt.Fprintln(out, "-  Redis skipped (REDIS_ENABLED=false)")
		return nil
	}

	rc, err := redis.New(cfg)
	if err != nil {
		return err
	}
	defer rc.Close()

	fmt.Fprintf(out, "✅ Redis reachable at %s\n", cfg.RedisAddr())
	return nil
}

// maskPassword hides the password in a database URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
