package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fizzhq/fizz/fizz-client/internal/config"
	"github.com/fizzhq/fizz/fizz-client/internal/domain"
	"github.com/fizzhq/fizz/fizz-client/internal/repository/genai"
	"github.com/fizzhq/fizz/fizz-client/internal/repository/postgres"
	"github.com/fizzhq/fizz/fizz-client/internal/service"
	"github.com/fizzhq/fizz/fizz-client/internal/store"
)

// Smoke binary: wires the sync core the way an application root would and
// verifies backend connectivity. The library carries no server of its own;
// a presentation layer embeds these components.
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	workspaceMemberRepo := postgres.NewWorkspaceMemberRepository(pool)
	projectMemberRepo := postgres.NewProjectMemberRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	gemini := genai.NewGeminiRepository(cfg.GeminiAPIKey, cfg.GeminiEndpoint)

	// One store per application root; consumers receive it by reference.
	st := store.New()

	// Initialize services
	workspaceService := service.NewWorkspaceService(
		projectRepo, taskRepo, workspaceMemberRepo, projectMemberRepo, commentRepo, st)
	service.NewAssistantService(gemini)

	log.Info().Str("env", cfg.Env).Msg("Sync core wired")

	// With a workspace id provided, load its tree once as a smoke check.
	if wsID := os.Getenv("WORKSPACE_ID"); wsID != "" {
		st.Apply(store.WorkspaceSet{Workspace: domain.Workspace{ID: wsID}})
		projects, err := workspaceService.FetchProjects(context.Background(), wsID)
		if err != nil {
			log.Fatal().Err(err).Str("workspace_id", wsID).Msg("Failed to fetch projects")
		}
		members, err := workspaceService.FetchWorkspaceMembers(context.Background(), wsID)
		if err != nil {
			log.Fatal().Err(err).Str("workspace_id", wsID).Msg("Failed to fetch members")
		}
		log.Info().
			Str("workspace_id", wsID).
			Int("projects", len(projects)).
			Int("members", len(members)).
			Msg("Workspace tree loaded")
	}
}
