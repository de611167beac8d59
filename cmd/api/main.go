package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhub/internal/config"
	"eventhub/internal/handler"
	"eventhub/internal/model"
	"eventhub/internal/pkg"
	"eventhub/internal/repository/mysql"
	"eventhub/internal/repository/redis"
	"eventhub/internal/router"
	"eventhub/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Event{},
		&model.EventInvite{},
		&model.Signup{},
		&model.Outbox{},
	); err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redis.Close()

	sessions := &redis.SessionRepository{}
	codes := &redis.EmailRepository{}

	userRepo := &mysql.UserRepository{DB: db}
	profileRepo := &mysql.ProfileRepository{DB: db}
	communityRepo := &mysql.CommunityRepository{DB: db}
	memberRepo := &mysql.CommunityMemberRepository{DB: db}
	eventRepo := &mysql.EventRepository{DB: db}
	signupRepo := &mysql.SignupRepository{DB: db}
	outboxRepo := &mysql.OutboxRepository{DB: db}

	emailSvc := service.NewEmailService(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, codes)
	userSvc := service.NewUserService(userRepo, sessions, emailSvc)
	profileSvc := service.NewProfileService(profileRepo)
	communitySvc := service.NewCommunityService(communityRepo, memberRepo)
	eventSvc := service.NewEventService(eventRepo, profileRepo, communityRepo)
	signupSvc := service.NewSignupService(signupRepo, eventRepo)

	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(outboxRepo, sender)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go relayer.Run(ctx)

	r := router.New(router.Deps{
		User:      handler.NewUserHandler(userSvc, emailSvc),
		Profile:   handler.NewProfileHandler(profileSvc),
		Event:     handler.NewEventHandler(eventSvc),
		Signup:    handler.NewSignupHandler(signupSvc),
		Community: handler.NewCommunityHandler(communitySvc),
		Sessions:  sessions,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("stopped")
}
