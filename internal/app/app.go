package app

import (
	"log/slog"
	"os"

	"github.com/reelmatch/core/internal/config"
	http_chat "github.com/reelmatch/core/internal/delivery/http/chat"
	http_init "github.com/reelmatch/core/internal/delivery/http/init"
	http_auth_middleware "github.com/reelmatch/core/internal/delivery/http/middleware/auth"
	http_realtime "github.com/reelmatch/core/internal/delivery/http/realtime"
	http_room "github.com/reelmatch/core/internal/delivery/http/room"
	http_voting "github.com/reelmatch/core/internal/delivery/http/voting"
	ws_room "github.com/reelmatch/core/internal/delivery/ws/room"
	infra_pg_init "github.com/reelmatch/core/internal/infra/postgres/init"
	infra_postgres_catalog "github.com/reelmatch/core/internal/infra/postgres/catalog"
	infra_postgres_room "github.com/reelmatch/core/internal/infra/postgres/room"
	infra_postgres_vote "github.com/reelmatch/core/internal/infra/postgres/vote"
	infra_redis_init "github.com/reelmatch/core/internal/infra/redis/init"
	infra_redis_roomcode_set "github.com/reelmatch/core/internal/infra/redis/roomcode_set"
	infra_s3 "github.com/reelmatch/core/internal/infra/s3"
	notify_health "github.com/reelmatch/core/internal/notify/health"
	notify_hybrid "github.com/reelmatch/core/internal/notify/hybrid"
	notify_managed "github.com/reelmatch/core/internal/notify/managed"
	usecase_room "github.com/reelmatch/core/internal/usecase/room"
	usecase_suggestion "github.com/reelmatch/core/internal/usecase/suggestion"
	usecase_vote "github.com/reelmatch/core/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	var posterResolver usecase_vote.PosterResolver
	s3conn := infra_s3.MustEstablishConn()
	if posters, err := infra_s3.New(cfg.Posters.Bucket, s3conn, cfg.Posters.Prefix, cfg.Posters.TTL); err != nil {
		logger.Warn("poster storage unavailable, links go out raw",
			slog.String("error", err.Error()))
	} else {
		posterResolver = posters
	}

	roomRepository := infra_postgres_room.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)
	catalogRepository := infra_postgres_catalog.New(pgConn)
	codeReserver := infra_redis_roomcode_set.New(redisConn, "room_codes")

	roomUC := usecase_room.New(roomRepository, codeReserver)
	voteUC := usecase_vote.New(voteRepository, voteRepository, catalogRepository, posterResolver)
	suggestionUC := usecase_suggestion.New(voteRepository, voteRepository)

	hub := ws_room.NewHub(ws_room.WithLogger(logger))

	managedPublisher := notify_managed.New(cfg.Realtime, notify_managed.WithLogger(logger))
	healthMonitor := notify_health.New(
		managedPublisher,
		cfg.Realtime.ProbeInterval,
		cfg.Realtime.ProbeTimeout,
		notify_health.WithLogger(logger),
	)
	distributor := notify_hybrid.New(
		hub,
		managedPublisher,
		healthMonitor,
		hub,
		notify_hybrid.WithLogger(logger),
	)

	authMiddleware := http_auth_middleware.New()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_room.New(roomUC, distributor, authMiddleware, http_room.WithLogger(logger)))
	controllerPool.Add(http_voting.New(voteUC, distributor, authMiddleware, http_voting.WithLogger(logger)))
	controllerPool.Add(http_chat.New(suggestionUC, distributor, authMiddleware, http_chat.WithLogger(logger)))
	controllerPool.Add(http_realtime.New(distributor, http_realtime.WithLogger(logger)))
	controllerPool.Add(ws_room.NewController(hub, ws_room.WithControllerLogger(logger)))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
