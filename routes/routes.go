package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/community-tournaments/docs"
	"github.com/Dosada05/community-tournaments/handlers"
	"github.com/Dosada05/community-tournaments/middleware"
	"github.com/Dosada05/community-tournaments/models"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Players     *handlers.PlayerHandler
	Tournaments *handlers.TournamentHandler
	Seasons     *handlers.SeasonHandler
	Rankings    *handlers.RankingHandler
	Games       *handlers.GameHandler
	Proposals   *handlers.ProposalHandler
	Badges      *handlers.BadgeHandler
	WebSocket   *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, opts Options, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// WebSocket
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeTournament)
	router.With(authenticate).Get("/ws/players/{playerID}", h.WebSocket.ServePlayer)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/streams", h.Players.LiveStreams)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Players.List)
			r.Get("/discord/{discordID}", h.Players.GetByDiscordID)
			r.Get("/{playerID}", h.Players.GetByID)
			r.Get("/{playerID}/stats", h.Players.Stats)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Patch("/{playerID}", h.Players.Update)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", h.Players.Create)
				r.Delete("/{playerID}", h.Players.Delete)
				r.Post("/{playerID}/token", h.Auth.PlayerToken)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournaments.List)
			r.Get("/{tournamentID}", h.Tournaments.GetByID)

			// Игрок может управлять только своей записью
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/{tournamentID}/players/{playerID}", h.Tournaments.Register)
				r.Delete("/{tournamentID}/players/{playerID}", h.Tournaments.Unregister)
				r.Put("/{tournamentID}/players/{playerID}/check-in", h.Tournaments.SetCheckIn)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", h.Tournaments.Create)
				r.Delete("/{tournamentID}", h.Tournaments.Delete)
				r.Put("/{tournamentID}/players", h.Tournaments.UpdatePlayers)
				r.Post("/{tournamentID}/teams", h.Tournaments.GenerateTeams)
				r.Delete("/{tournamentID}/channels", h.Tournaments.DeleteTeamChannels)
				r.Put("/{tournamentID}/teams/{teamID}/ranking", h.Tournaments.UpdateTeamRanking)
				r.Put("/{tournamentID}/teams/{teamID}/score", h.Tournaments.UpdateTeamScore)
				r.Post("/{tournamentID}/finish", h.Tournaments.MarkFinished)
				r.Post("/{tournamentID}/force-finish", h.Tournaments.Finish)
				r.Post("/{tournamentID}/unfinish", h.Tournaments.Unfinish)
			})
		})

		r.Route("/seasons", func(r chi.Router) {
			r.Get("/", h.Seasons.List)
			r.Get("/current", h.Seasons.Current)
			r.Get("/{seasonID}", h.Seasons.GetByID)
			r.Get("/{seasonID}/ranking", h.Seasons.Ranking)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", h.Seasons.Create)
				r.Delete("/{seasonID}", h.Seasons.Delete)
				r.Post("/{seasonID}/tournaments/{tournamentID}", h.Seasons.AddTournament)
				r.Delete("/{seasonID}/tournaments/{tournamentID}", h.Seasons.RemoveTournament)
			})
		})

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/players", h.Rankings.Players)
			r.Get("/champions", h.Rankings.Champions)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", h.Games.List)
			r.Get("/{gameID}", h.Games.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", h.Games.Create)
				r.Patch("/{gameID}", h.Games.Update)
				r.Delete("/{gameID}", h.Games.Delete)
				r.Post("/{gameID}/image", h.Games.UploadImage)
			})
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", h.Proposals.List)
			r.Get("/{proposalID}", h.Proposals.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Proposals.Create)
				r.Post("/{proposalID}/vote", h.Proposals.Vote)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Put("/{proposalID}/status", h.Proposals.SetStatus)
				r.Delete("/{proposalID}", h.Proposals.Delete)
				r.Post("/{proposalID}/image", h.Proposals.UploadImage)
			})
		})

		r.Route("/badges", func(r chi.Router) {
			r.Get("/", h.Badges.List)
			r.Get("/{badgeID}", h.Badges.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", h.Badges.Create)
				r.Delete("/{badgeID}", h.Badges.Delete)
				r.Post("/award", h.Badges.Award)
				r.Post("/{badgeID}/players/{playerID}", h.Badges.Grant)
				r.Delete("/{badgeID}/players/{playerID}", h.Badges.Revoke)
			})
		})
	})
}
