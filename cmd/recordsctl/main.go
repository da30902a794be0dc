package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unirecords/client-go/internal/api"
	"github.com/unirecords/client-go/internal/session"
	"github.com/unirecords/client-go/internal/store"
	"github.com/unirecords/client-go/internal/transport"
	"github.com/unirecords/client-go/pkg/config"
	appErrors "github.com/unirecords/client-go/pkg/errors"
	"github.com/unirecords/client-go/pkg/logger"
	"github.com/unirecords/client-go/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	collector := metrics.New(prometheus.NewRegistry())
	validate := validator.New()
	tokens := session.NewFileTokenStore(cfg.Auth.TokenPath)

	// The session supplies the bearer token to the transport, and the
	// transport carries the auth calls the session makes; TokenFunc breaks
	// the construction cycle.
	var sess *session.Session
	client := transport.New(cfg.API, transport.TokenFunc(func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	}), logr, collector)

	apis := api.NewSet(client)
	sess = session.New(apis.Auth, tokens, validate, logr)

	cache := store.NewCache(cfg.API.RetryCount, logr, collector)
	cli := &commandLine{
		sess:       sess,
		students:   store.NewStudentStore(apis.Students, cache, cfg.Cache.TTL, validate, logr),
		schedules:  store.NewScheduleStore(apis.Schedules, cache, cfg.Cache.TTL, validate, logr),
		attendance: store.NewAttendanceStore(apis.Attendance, cache, cfg.Cache.TTL, validate, logr),
		gradebook:  store.NewGradebookStore(apis.Gradebook, cache, cfg.Cache.TTL, validate, logr),
		subjects:   store.NewSubjectStore(apis.Subjects, cache, cfg.Cache.SubjectsTTL, logr),
	}

	if err := cli.run(os.Args); err != nil {
		if err == errHelp {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, appErrors.Message(err))
		os.Exit(1)
	}
}
