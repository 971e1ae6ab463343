package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/config"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/database"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/handler"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/membership"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/middleware"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/queue"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/router"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/search"
)

func main() {
	// .env is optional; real deployments use actual environment vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	classes := repository.NewClassRepo(db)
	categories := repository.NewCategoryRepo(db)
	media := repository.NewMediaRepo(db)
	events := repository.NewEventRepo(db)
	members := repository.NewEventMemberRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	ratings := repository.NewRatingRepo(db)

	engine := search.NewEngine(classes)
	membershipSvc := membership.NewService(events, users, members)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	discoveryH := handler.NewDiscoveryHandler(engine)
	classH := handler.NewClassHandler(classes, categories, media)
	categoryH := handler.NewCategoryHandler(categories)
	eventH := handler.NewEventHandler(events, classes, members)
	memberH := handler.NewMembershipHandler(membershipSvc, events, users)
	ratingH := handler.NewRatingHandler(ratings, classes)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional. Without it the discovery endpoint simply runs
	// uncached and unthrottled.
	var discoveryMW []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rlCfg := config.LoadRateLimitConfig()
		if rlCfg.Enabled {
			discoveryMW = append(discoveryMW, middleware.NewTokenBucket(rlCfg, rdb))
		}
		cacheCfg := config.LoadCacheConfig()
		if cacheCfg.Enabled {
			discoveryMW = append(discoveryMW, middleware.NewRedisCache(cacheCfg, rdb))
		}
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, router.PublicHandlers{
		Discovery:  discoveryH,
		Classes:    classH,
		Categories: categoryH,
		Events:     eventH,
		Members:    memberH,
		Ratings:    ratingH,
	}, discoveryMW...)
	router.RegisterProtected(e, router.ProtectedHandlers{
		Classes: classH,
		Events:  eventH,
		Members: memberH,
		Ratings: ratingH,
	}, categoryH, cfg.JWTSecret)

	// The activity consumer keeps reconnecting on its own; a broker
	// outage never takes the API down.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
