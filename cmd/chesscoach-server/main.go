package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"chesscoach/pkg/api"
	"chesscoach/pkg/config"
	"chesscoach/pkg/engine"
	"chesscoach/pkg/profile"
)

func main() {
	enginePath := flag.String("engine", "", "path to a UCI engine binary")
	addr := flag.String("addr", "", "listen address, overrides APP_PORT")
	flag.Parse()

	config.Load()
	log.SetPrefix("API: ")

	binPath, err := engine.FindBinary(firstNonEmpty(*enginePath, config.EnginePath()))
	if err != nil {
		log.Fatal(err)
	}
	// One engine process per session: Skill Level is global engine state.
	newAdvisor := func() (engine.Advisor, error) {
		return engine.New(binPath)
	}

	dbDir, err := config.ProfileDBDir()
	if err != nil {
		log.Fatalf("resolve data dir: %v", err)
	}
	store, err := profile.OpenStore(dbDir)
	if err != nil {
		log.Fatalf("open profile store: %v", err)
	}
	defer store.Close()

	r := gin.Default()
	api.NewServer(newAdvisor, store, config.AnalysisDepth(), config.EngineMoveTime()).Register(r)

	listen := *addr
	if listen == "" {
		listen = config.APIAddr()
	}
	log.Printf("Listening at %s", listen)
	if err := r.Run(listen); err != nil {
		log.Fatal(err)
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
