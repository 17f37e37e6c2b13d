package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/notnil/chess"

	"chesscoach/pkg/cli"
	"chesscoach/pkg/config"
	"chesscoach/pkg/engine"
	"chesscoach/pkg/gui"
	"chesscoach/pkg/profile"
	"chesscoach/pkg/session"
)

func main() {
	enginePath := flag.String("engine", "", "path to a UCI engine binary")
	depth := flag.Int("depth", 0, "search depth used to grade moves")
	side := flag.String("color", "white", "side to play, white or black")
	name := flag.String("name", "", "player name, random when empty")
	plain := flag.Bool("plain", false, "line mode instead of the full screen UI")
	logPath := flag.String("log", "", "path to a log file")
	flag.Parse()

	config.Load()
	if *logPath != "" {
		cli.InitLog(*logPath, "CLIENT: ")
	} else if !*plain {
		// The full screen UI owns the terminal.
		log.SetOutput(io.Discard)
	}

	binPath := *enginePath
	if binPath == "" {
		binPath = config.EnginePath()
	}
	adv, err := engine.New(binPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Install Stockfish (https://stockfishchess.org) or point -engine at a UCI engine binary.")
		os.Exit(1)
	}
	defer adv.Close()

	playerColor := chess.White
	if s := strings.ToLower(*side); s == "black" || s == "b" {
		playerColor = chess.Black
	}

	playerID := *name
	if playerID == "" {
		playerID = petname.Generate(2, "-")
		fmt.Printf("Playing as %s\n", playerID)
	}

	analysisDepth := *depth
	if analysisDepth == 0 {
		analysisDepth = config.AnalysisDepth()
	}

	// Profiles are optional. A locked or unwritable database should not
	// keep anyone from playing.
	var store *profile.Store
	if dbDir, err := config.ProfileDBDir(); err == nil {
		if s, err := profile.OpenStore(dbDir); err == nil {
			store = s
			defer store.Close()
		} else {
			log.Printf("profiles disabled: %v", err)
		}
	} else {
		log.Printf("profiles disabled: %v", err)
	}

	sess, err := session.New(session.Config{
		Advisor:     adv,
		Store:       store,
		PlayerID:    playerID,
		PlayerColor: playerColor,
		Depth:       analysisDepth,
		MoveTime:    config.EngineMoveTime(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *plain {
		if err := cli.NewREPL(sess, os.Stdin, os.Stdout).Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := gui.NewApp(sess, gui.ThemeBasic).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
