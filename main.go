package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"StudyInk/internal/chat"
	inknet "StudyInk/internal/net"
	"StudyInk/internal/scripture"
	"StudyInk/internal/storage"
	"StudyInk/internal/ui"
)

const sharePort = 8971

func main() {
	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	adapter := storage.NewAdapter(store)
	client := scripture.NewClient(os.Getenv("SCRIPTURE_API_URL"), store)

	assistant, err := chat.NewAssistant()
	if err != nil {
		log.Printf("study assistant disabled: %v", err)
		assistant = nil
	}

	shareAddr := ""
	if os.Getenv("STUDYINK_NO_SHARE") == "" {
		server := inknet.NewServer(adapter)
		go func() {
			if err := server.Start(sharePort); err != nil {
				log.Printf("[NET] backup server stopped: %v", err)
			}
		}()
		if mdnsServer, err := inknet.Advertise(sharePort); err != nil {
			log.Printf("[NET] mdns advertise failed: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
		shareAddr = fmt.Sprintf("%s:%d", inknet.OutgoingIP(), sharePort)
	}

	ui.RunApp(ui.Config{
		Adapter:   adapter,
		Scripture: client,
		Assistant: assistant,
		ShareAddr: shareAddr,
	})
}

func openStore() (*storage.BoltStore, error) {
	dir := os.Getenv("STUDYINK_DATA_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".studyink")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return storage.OpenBolt(filepath.Join(dir, "studyink.db"))
}
