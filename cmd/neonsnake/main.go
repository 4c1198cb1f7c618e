package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"neon-snake/internal/cache"
	"neon-snake/internal/check"
	"neon-snake/internal/config"
	"neon-snake/internal/server"
	"neon-snake/internal/site"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:          "neonsnake",
	Short:        "neonsnake - landing page server for the Neon Snake browser game",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Validate()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := config.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		c, err := cache.New(cfg.Cache)
		if err != nil {
			logger.Fatal("Failed to init cache", zap.Error(err))
		}
		if c != nil {
			defer c.Close()
			logger.Info("Render cache enabled", zap.String("backend", cfg.Cache.Backend))
		}

		srv := server.NewServer(cfg, site.NewContent(cfg.TemplateDir, cfg.StaticDir), c, logger)

		// Setup Signal Handling (Ctrl+C)
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("Server failed", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Error("Shutdown failed", zap.Error(err))
			}
		}

		logger.Info("Goodbye!")
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, rt := range site.Routes(cfg.Prefix) {
			fmt.Fprintf(out, "%-40s %s\n", rt.Path, site.Describe(rt.Action))
		}
		fmt.Fprintf(out, "%-40s %s\n", config.StaticPath+"*", "static dir "+cfg.StaticDir)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Request every route in-process and report the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.NewServer(cfg, site.NewContent(cfg.TemplateDir, cfg.StaticDir), nil, zap.NewNop())

		routes := site.Routes(cfg.Prefix)
		paths := make([]string, len(routes))
		for i, rt := range routes {
			paths[i] = rt.Path
		}

		results := check.Run(cmd.Context(), srv.Handler(), paths)

		out := cmd.OutOrStdout()
		for _, r := range results {
			status := "ok"
			if !r.OK() {
				status = "FAIL"
			}
			fmt.Fprintf(out, "%-4s %3d %-40s %6d %s", status, r.Status, r.Path, r.Bytes, r.ContentType)
			if r.Title != "" {
				fmt.Fprintf(out, " %q", r.Title)
			}
			if r.Err != nil {
				fmt.Fprintf(out, " (%v)", r.Err)
			}
			fmt.Fprintln(out)
		}

		if check.Failed(results) {
			return errors.New("one or more routes failed")
		}
		return nil
	},
}

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Write robots.txt and sitemap.xml for --origin into the static dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		sitemap, err := site.Sitemap(cfg.Origin, cfg.Prefix)
		if err != nil {
			return err
		}

		files := map[string][]byte{
			site.RobotsFile:  site.Robots(cfg.Origin, cfg.Prefix),
			site.SitemapFile: sitemap,
		}
		for _, name := range []string{site.RobotsFile, site.SitemapFile} {
			path := filepath.Join(cfg.StaticDir, name)
			if err := os.WriteFile(path, files[name], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flags.StringVar(&cfg.TemplateDir, "templates", cfg.TemplateDir, "Directory holding index.html")
	flags.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Directory holding static assets")
	flags.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Path prefix the site is also served under (empty to disable)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.Development, "dev", cfg.Development, "Human readable development logging")

	serveCmd.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	serveCmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	serveCmd.Flags().StringVar(&cfg.Cache.Backend, "cache", cfg.Cache.Backend, "Render cache backend (none, memory, redis). "+
		"While a page is cached, template edits and a deleted index.html go unnoticed until --cache-ttl expires")
	serveCmd.Flags().StringVar(&cfg.Cache.RedisAddr, "redis", cfg.Cache.RedisAddr, "Address of Redis server")
	serveCmd.Flags().DurationVar(&cfg.Cache.TTL, "cache-ttl", cfg.Cache.TTL, "How long rendered pages stay cached")

	assetsCmd.Flags().StringVar(&cfg.Origin, "origin", cfg.Origin, "Public origin (scheme://host) the site is deployed at")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(assetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
