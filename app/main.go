package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/fatih/color"
	"github.com/go-pkgz/fileutils"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/tg-guard/app/banlog"
	"github.com/umputun/tg-guard/app/events"
	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/app/storage/engine"
	"github.com/umputun/tg-guard/app/webapi"
	"github.com/umputun/tg-guard/lib"
)

type options struct {
	Telegram struct {
		Token   string        `long:"token" env:"TOKEN" description:"telegram bot token" required:"true"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"http client timeout for telegram"`
	} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

	Keywords     string `long:"keywords" env:"KEYWORDS" default:"data/spam-keywords.json" description:"spam keywords, json array of strings"`
	AuditChannel int64  `long:"audit-channel" env:"AUDIT_CHANNEL" description:"chat id to forward rejected messages to"`
	InstanceID   string `long:"instance-id" env:"INSTANCE_ID" default:"tg-guard" description:"instance id, separates data of bots sharing a database"`
	DataBaseURL  string `long:"db" env:"DB" default:"data/tg-guard.db" description:"database url, sqlite file or postgres://"`

	Logs struct {
		Dir        string `long:"dir" env:"DIR" default:"logs" description:"directory for per-chat ban logs"`
		MaxSize    int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max size of a ban log in megabytes before rotation"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"max number of rotated ban logs to keep"`
	} `group:"logs" namespace:"logs" env-namespace:"LOGS"`

	Server struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable web API server"`
		ListenAddr string `long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
		AuthUser   string `long:"auth-user" env:"AUTH_USER" default:"tg-guard" description:"basic auth user"`
		AuthPasswd string `long:"auth" env:"AUTH" description:"basic auth password, no auth if empty"`
	} `group:"server" namespace:"server" env-namespace:"SERVER"`

	BanTTL time.Duration `long:"ban-ttl" env:"BAN_TTL" default:"1m" description:"ignore messages of just banned users for this long"`
	Dry    bool          `long:"dry" env:"DRY" description:"dry mode, reply only, no forward, delete or ban"`
	Dbg    bool          `long:"dbg" env:"DEBUG" description:"debug mode"`
	TGDbg  bool          `long:"tg-dbg" env:"TG_DEBUG" description:"telegram debug mode"`
}

var revision = "local"

func main() {
	fmt.Printf("tg-guard %s\n", revision)
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	setupLog(opts.Dbg, opts.Telegram.Token, opts.Server.AuthPasswd)
	log.Printf("[DEBUG] options: %+v", opts)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, opts options) error {
	if opts.Dry {
		log.Print("[WARN] dry mode, no actual forwards, deletes and bans")
	}

	validator := makeEngine(opts)

	db, err := makeDB(ctx, opts)
	if err != nil {
		return fmt.Errorf("can't make db, %w", err)
	}
	defer db.Close()

	chats, err := storage.NewChats(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make chats storage, %w", err)
	}
	bans, err := storage.NewBans(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make bans storage, %w", err)
	}
	if ids, aerr := chats.ActiveIDs(ctx); aerr == nil {
		log.Printf("[INFO] active chats: %d", len(ids))
	}

	banLog, err := banlog.New(banlog.Config{Dir: opts.Logs.Dir, MaxSize: opts.Logs.MaxSize, MaxBackups: opts.Logs.MaxBackups})
	if err != nil {
		return fmt.Errorf("can't make ban log, %w", err)
	}
	defer func() {
		if cerr := banLog.Close(); cerr != nil {
			log.Printf("[WARN] can't close ban logs, %v", cerr)
		}
	}()

	if opts.Server.Enabled {
		srv := webapi.NewServer(webapi.Config{
			Version:    revision,
			ListenAddr: opts.Server.ListenAddr,
			Validator:  validator,
			Chats:      chats,
			Bans:       bans,
			AuthUser:   opts.Server.AuthUser,
			AuthPasswd: opts.Server.AuthPasswd,
		})
		go func() {
			if serr := srv.Run(ctx); serr != nil {
				log.Printf("[ERROR] webapi server failed, %v", serr)
			}
		}()
	}

	// make telegram bot
	tbAPI, err := tbapi.NewBotAPIWithClient(opts.Telegram.Token, tbapi.APIEndpoint, &http.Client{Timeout: opts.Telegram.Timeout})
	if err != nil {
		return fmt.Errorf("can't make telegram bot, %w", err)
	}
	tbAPI.Debug = opts.TGDbg
	log.Printf("[INFO] telegram bot @%s authorized", tbAPI.Self.UserName)

	tgListener := events.TelegramListener{
		TbAPI:       tbAPI,
		Validator:   validator,
		Chats:       chats,
		Bans:        bans,
		BanLog:      banLog,
		AuditChatID: opts.AuditChannel,
		Dry:         opts.Dry,
		BanTTL:      opts.BanTTL,
	}
	log.Printf("[DEBUG] telegram listener config: {audit: %d, dry: %v, ban-ttl: %v}",
		tgListener.AuditChatID, tgListener.Dry, tgListener.BanTTL)

	// run telegram listener and event processor loop
	if err := tgListener.Do(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("telegram listener failed, %w", err)
	}
	return nil
}

// makeEngine makes the validation engine. Keywords are optional, missing or broken keywords file
// disables the keyword rule only, greek and mixed alphabet rules work without it.
func makeEngine(opts options) *lib.Engine {
	kw := loadKeywords(opts.Keywords)
	res := lib.NewEngine(lib.Config{Keywords: kw})
	rules := make([]string, 0, len(res.Rules()))
	for _, r := range res.Rules() {
		rules = append(rules, string(r))
	}
	log.Printf("[INFO] rules: %s, keywords: %d", strings.Join(rules, ", "), kw.Len())
	return res
}

func loadKeywords(path string) lib.Keywords {
	if path == "" {
		log.Printf("[WARN] keywords file not set, keyword rule disabled")
		return lib.Keywords{}
	}
	if !fileutils.IsFile(path) {
		log.Printf("[WARN] keywords file %s not found, keyword rule disabled", path)
		return lib.Keywords{}
	}
	fh, err := os.Open(path) //nolint:gosec // path from the command line
	if err != nil {
		log.Printf("[WARN] can't open keywords file %s, keyword rule disabled: %v", path, err)
		return lib.Keywords{}
	}
	defer fh.Close()
	kw, err := lib.LoadKeywords(fh)
	if err != nil {
		log.Printf("[WARN] can't load keywords from %s, keyword rule disabled: %v", path, err)
		return lib.Keywords{}
	}
	log.Printf("[DEBUG] keywords loaded from %s: %d", path, kw.Len())
	return kw
}

// makeDB opens the database, for sqlite files the parent directory is created if missing
func makeDB(ctx context.Context, opts options) (*engine.SQL, error) {
	if file, ok := sqliteFile(opts.DataBaseURL); ok {
		if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
			return nil, fmt.Errorf("can't make db directory for %s, %w", file, err)
		}
	}
	db, err := engine.New(ctx, opts.DataBaseURL, opts.InstanceID)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] db opened, type %s, gid %s", db.Type(), db.GID())
	return db, nil
}

// sqliteFile returns the file name for sqlite urls, false for postgres and in-memory databases
func sqliteFile(dbURL string) (string, bool) {
	for _, prefix := range []string{"file://", "file:", "sqlite://"} {
		if strings.HasPrefix(dbURL, prefix) {
			return strings.TrimPrefix(dbURL, prefix), true
		}
	}
	if strings.HasSuffix(dbURL, ".db") || strings.HasSuffix(dbURL, ".sqlite") {
		return dbURL, true
	}
	return "", false
}

func setupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	nonEmpty := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
