package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"user-notes/config"
	"user-notes/db"
	"user-notes/handlers"
	appmw "user-notes/middleware"
	"user-notes/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from environment")
	}
	cfg := config.Load()

	database, err := db.Connect(cfg.DSN)
	if err != nil {
		log.Fatal("DB connection error: ", err)
	}

	users := store.NewUserStore(database)
	notes := store.NewNoteStore(database)
	auth := handlers.NewAuthHandler(users, cfg.BcryptCost)
	noteHandler := handlers.NewNoteHandler(notes)

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-Id, X-Session-Id, X-Note-Id, Type-Search")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Expose-Headers", "X-Session-Id")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post("/register", auth.Register)
	r.Post("/login", auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireSession(users))
		r.Post("/search", noteHandler.Search)
		r.Get("/notes", noteHandler.List)
		r.Post("/notes", noteHandler.Create)
		r.Put("/notes", noteHandler.Update)
		r.Delete("/notes", noteHandler.Delete)
	})

	log.Printf("server running on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, r))
}
