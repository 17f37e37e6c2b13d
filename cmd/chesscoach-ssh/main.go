package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chesscoach/pkg/config"
	"chesscoach/pkg/sshd"
)

func main() {
	clientBin := flag.String("client", "chesscoach", "path to the terminal client binary")
	addr := flag.String("addr", "", "listen address, overrides SSH_PORT")
	flag.Parse()

	config.Load()
	log.SetPrefix("SSH: ")

	listen := *addr
	if listen == "" {
		listen = config.SSHAddr()
	}

	srv, err := sshd.NewServer(sshd.Config{
		Addr:        listen,
		HostKeyPath: config.HostKeyPath(),
		ClientBin:   *clientBin,
	})
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		log.Printf("Listening at %s", listen)
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	<-sigc
	srv.Close()
}
