package main

import (
	"artdrive/drive"
	"artdrive/handlers/auth"
	"artdrive/handlers/search"
	"artdrive/httpjson"
	"artdrive/met"
	appMiddleware "artdrive/middleware"
	"artdrive/stores"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func handleHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, r, `
<form method="POST" action="/search">
    <label>Search MET Artworks:</label>
    <input type="text" name="keyword" required />
    <button type="submit">Search</button>
</form>
<p><a href="/auth">Login to Google</a> first.</p>
`)
	}
}

func setupRouter(creds *auth.Manager, finder *met.Finder, uploads *drive.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every route runs single-flight: one request's whole workflow finishes
	// before the next begins.
	serializer := appMiddleware.NewSerializer()
	r.Use(serializer.Handler)

	r.Get("/", handleHome())
	r.Get("/auth", auth.HandleLogin(creds))
	r.Get("/oauth2callback", auth.HandleCallback(creds))
	r.Post("/search", search.Handle(creds, finder, uploads))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-sig
	logrus.Info("Shutting down...")
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3000", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	requestTimeout := flag.Duration("timeout", 2*time.Minute, "Timeout for outbound API calls.")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	client := httpjson.NewClient(*requestTimeout)
	creds := auth.NewManager(client)
	finder := met.NewFinder(client, os.Getenv("MET_BASE_URL"))
	folders := stores.GetFolderStore()
	uploads := drive.NewService(client, folders, os.Getenv("DRIVE_BASE_URL"))

	r := setupRouter(creds, finder, uploads)

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := http.ListenAndServe(*listenAddress, r); err != nil {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	waitForShutdown()
}
