package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Joseda-hg/dailytodo/internal/config"
	"github.com/Joseda-hg/dailytodo/internal/db"
	"github.com/Joseda-hg/dailytodo/internal/logging"
	"github.com/Joseda-hg/dailytodo/internal/tracker"
	"github.com/Joseda-hg/dailytodo/internal/tui"
	"github.com/Joseda-hg/dailytodo/internal/web"
)

var Version = "dev"

type app struct {
	configPath string
	dbPath     string
	web        bool
	webOnly    bool
	port       int

	cfg     config.Config
	log     *zap.Logger
	conn    *sql.DB
	tracker *tracker.Tracker
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dailytodo",
		Short:         "Track daily progress toward numeric goals",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file path")
	flags.StringVar(&a.dbPath, "db", "", "sqlite db path")
	rootCmd.Flags().BoolVar(&a.web, "web", false, "enable web server")
	rootCmd.Flags().BoolVar(&a.webOnly, "web-only", false, "run web server only")
	rootCmd.Flags().IntVar(&a.port, "port", 0, "web server port")

	rootCmd.AddCommand(
		listCmd(a),
		addCmd(a),
		doneCmd(a),
		incCmd(a),
		editCmd(a),
		rmCmd(a),
		exportCmd(a),
		importCmd(a),
		settingsCmd(a),
	)
	return rootCmd
}

// setup resolves configuration, opens the database and builds the tracker
// shared by every command.
func (a *app) setup() error {
	cfgPath, err := resolveConfigPath(a.configPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.web || a.webOnly {
		cfg.WebEnabled = true
	}
	if a.port != 0 {
		cfg.WebPort = a.port
	}
	cfg = config.ApplyDefaults(cfg, cfgPath)

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return err
	}
	a.log = logger

	conn, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	a.conn = conn
	a.tracker = tracker.New(db.NewStore(conn), tracker.WithLogger(logger))

	logger.Debug("started", zap.String("config", cfgPath), zap.String("db", cfg.DBPath))
	return nil
}

// close releases what setup opened. It runs after Execute on success and on
// error alike.
func (a *app) close() {
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) run() error {
	if a.cfg.WebEnabled {
		addr := fmt.Sprintf(":%d", a.cfg.WebPort)
		server := &http.Server{Addr: addr, Handler: web.NewServer(a.tracker, a.log).Handler()}
		if a.webOnly {
			fmt.Printf("Web server running at http://localhost%s\n", addr)
			a.log.Info("web server starting", zap.String("addr", addr))
			return server.ListenAndServe()
		}

		go func() {
			a.log.Info("web server starting", zap.String("addr", addr))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.log.Error("web server error", zap.Error(err))
			}
		}()
		defer server.Close()
	}

	return tui.Run(a.tracker)
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func openDB(dbPath string) (*sql.DB, error) {
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, err
	}
	return db.Open(dbPath)
}
