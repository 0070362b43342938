package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"

	"github.com/feifei876/alien-invasion/internal/config"
	"github.com/feifei876/alien-invasion/internal/difficulty"
	"github.com/feifei876/alien-invasion/internal/highscore"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

const qrSize = 256

// scoreRow is one line of the leaderboard.
type scoreRow struct {
	Tier  string `json:"tier"`
	Score int    `json:"score"`
}

type pageData struct {
	Command string
	Scores  []scoreRow
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders-web",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	store, closer, err := highscore.Open(cfg.HighScores.Backend, cfg.HighScores.Path)
	if err != nil {
		logger.Fatal("failed to open high scores", "err", err)
	}
	defer closer.Close()

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, newRouter(cfg, store, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newRouter serves the landing page, the score table as JSON and a QR code
// of the ssh command.
func newRouter(cfg config.Config, store highscore.Store, logger *log.Logger) http.Handler {
	command := sshCommand(cfg)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{Command: command, Scores: loadScores(store, logger)}
		if err := page.Execute(w, data); err != nil {
			logger.Warn("render page", "err", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/scores", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(loadScores(store, logger)); err != nil {
			logger.Warn("encode scores", "err", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/qr.png", func(w http.ResponseWriter, req *http.Request) {
		png, err := qrcode.Encode(command, qrcode.Medium, qrSize)
		if err != nil {
			logger.Error("encode qr", "err", err)
			http.Error(w, "qr code unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}).Methods(http.MethodGet)

	return r
}

func sshCommand(cfg config.Config) string {
	if cfg.SSH.Port == "22" {
		return "ssh -t " + cfg.Web.DisplayHost
	}
	return fmt.Sprintf("ssh -t -p %s %s", cfg.SSH.Port, cfg.Web.DisplayHost)
}

// loadScores returns the best score per tier in tier order. An unreadable
// record shows as zeros.
func loadScores(store highscore.Store, logger *log.Logger) []scoreRow {
	table, err := store.Load()
	if err != nil {
		logger.Warn("high scores unreadable", "err", err)
	}
	rows := make([]scoreRow, 0, len(difficulty.All()))
	for _, tier := range difficulty.All() {
		rows = append(rows, scoreRow{Tier: tier.Label(), Score: table.Get(tier)})
	}
	return rows
}
