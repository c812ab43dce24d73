package main

import (
	"context"
	"flag"
	"log"

	"github.com/indieinfra/reel/config"
	"github.com/indieinfra/reel/server"
	"github.com/indieinfra/reel/server/state"
	mediafactory "github.com/indieinfra/reel/storage/media/factory"
	vlogfactory "github.com/indieinfra/reel/storage/vlog/factory"
)

func main() {
	log.SetPrefix("reel: ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile | log.Lmsgprefix)

	configFile := flag.String("config", "", "Path to the configuration file (i.e., /etc/reel.yml); optional, environment variables suffice")
	flag.Parse()

	log.Println("loading configuration...")
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	vlogStore, err := vlogfactory.Create(&cfg.Store)
	if err != nil {
		log.Fatalf("failed to build vlog store: %v", err)
	}
	defer func() {
		if err := vlogStore.Close(context.Background()); err != nil {
			log.Printf("error closing vlog store: %v", err)
		}
	}()

	mediaStore, err := mediafactory.Create(cfg)
	if err != nil {
		log.Fatalf("failed to build media store: %v", err)
	}

	st := &state.State{
		Cfg:   cfg,
		Vlogs: vlogStore,
		Media: mediaStore,
	}

	log.Println("starting http server...")
	server.StartServer(st)
}
