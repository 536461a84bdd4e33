// Command seed validates the authored chapter files and replaces the story tables with them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vn-server/internal/config"
	"vn-server/internal/database"
	"vn-server/internal/interfaces"
	"vn-server/internal/story"
	"vn-server/pkg/migration"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

// seedConfig читается из окружения через cleanenv.
// Пароль БД не хранится здесь, он читается из docker secret или DB_PASSWORD.
type seedConfig struct {
	ContentDir    string `env:"CONTENT_DIR" env-default:"content"`
	// Сидер по умолчанию строже сервера: предупреждения тоже останавливают загрузку
	StrictContent bool   `env:"STRICT_CONTENT" env-default:"true"`
	ValidateOnly  bool   `env:"SEED_VALIDATE_ONLY" env-default:"false"`
	SkipMigrate   bool   `env:"SEED_SKIP_MIGRATIONS" env-default:"false"`

	DBHost    string `env:"DB_HOST" env-default:"localhost"`
	DBPort    string `env:"DB_PORT" env-default:"5432"`
	DBUser    string `env:"DB_USER" env-default:"postgres"`
	DBName    string `env:"DB_NAME" env-default:"vn"`
	DBSSLMode string `env:"DB_SSL_MODE" env-default:"disable"`
}

func (c seedConfig) dsn(password string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, password, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("cmd", "seed").Logger()

	// .env необязателен, ошибку игнорируем
	_ = godotenv.Load()

	var cfg seedConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to read seeder configuration")
	}

	// Ctrl+C прерывает запросы к БД через контекст
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

// run проверяет контент и, если нужно, записывает его в БД.
func run(ctx context.Context, cfg seedConfig, log zerolog.Logger) error {
	content, err := story.LoadFS(os.DirFS(cfg.ContentDir))
	if err != nil {
		return fmt.Errorf("failed to read content from %s: %w", cfg.ContentDir, err)
	}

	// Сначала полная проверка графа, БД не трогаем пока контент не валиден
	graph, err := story.Build(content, story.BuildOptions{Strict: cfg.StrictContent})
	if err != nil {
		var integrityErr *story.GraphIntegrityError
		if errors.As(err, &integrityErr) {
			// Показываем все проблемы сразу, а не только первую
			for _, issue := range integrityErr.Issues {
				log.Error().Str("code", string(issue.Code)).Msg(issue.String())
			}
		}
		return err
	}
	for _, w := range graph.Warnings() {
		log.Warn().Str("code", string(w.Code)).Msg(w.String())
	}
	log.Info().
		Int("scenes", graph.Len()).
		Int("characters", len(content.Characters)).
		Str("dir", cfg.ContentDir).
		Msg("story graph is valid")

	if cfg.ValidateOnly {
		return nil
	}

	password, err := config.ReadSecret("db_password", "DB_PASSWORD")
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, cfg.dsn(password))
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer pool.Close()

	// Схема должна существовать до записи контента
	if !cfg.SkipMigrate {
		migrator := migration.NewMigrator(migration.Config{
			MigrationsFS:   database.MigrationsFS,
			MigrationsPath: database.MigrationsPath,
		}, pool, log)
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	// Замена контента атомарна: сервер никогда не увидит половину графа
	repo := database.NewPgStoryContentRepository(zap.NewNop())
	err = database.NewPgTransactor(pool).WithTx(ctx, func(tx interfaces.DBTX) error {
		return repo.ReplaceAll(ctx, tx, content)
	})
	if err != nil {
		return fmt.Errorf("failed to replace story content: %w", err)
	}

	log.Info().Int("scenes", len(content.Scenes)).Msg("story content replaced")
	return nil
}
