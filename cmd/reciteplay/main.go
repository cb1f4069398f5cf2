// Command reciteplay plays a range of verses from the terminal. It wires
// the full stack - config, progress store, audio cache, catalog resolver,
// speaker transport, engine - and drives it with simple line commands.
package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sakina-app/core/internal/audio"
	"github.com/sakina-app/core/internal/config"
	"github.com/sakina-app/core/internal/errmsg"
	"github.com/sakina-app/core/internal/player"
	"github.com/sakina-app/core/internal/progress"
	"github.com/sakina-app/core/internal/quran"
	"github.com/sakina-app/core/internal/recitation"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "usage: %s <surah> <from-verse> <to-verse>\n", os.Args[0])
		os.Exit(2)
	}

	surah, err1 := strconv.Atoi(os.Args[1])
	from, err2 := strconv.Atoi(os.Args[2])
	to, err3 := strconv.Atoi(os.Args[3])
	if err1 != nil || err2 != nil || err3 != nil || from > to {
		log.Fatalf("invalid verse range %v", os.Args[1:])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	store, err := progress.Open()
	if err != nil {
		log.Fatal(errmsg.Format(errmsg.OpProgressOpen, err))
	}
	defer store.Close()

	cache, err := audio.OpenCache(cfg.CacheDir)
	if err != nil {
		log.Fatal(errmsg.Format(errmsg.OpCacheOpen, err))
	}
	defer cache.Close()

	reciter := quran.Reciter{ID: cfg.Reciter}
	if reciter.IsZero() {
		reciter = quran.Reciter{ID: "husary", Name: "Al-Husary"}
	}

	pb := cfg.GetPlaybackConfig()
	svc := recitation.New(
		audio.NewCachedResolver(audio.NewCatalog(cfg.CatalogURL), cache),
		player.New(),
		store,
		recitation.Options{
			Reciter:        reciter,
			SpeedMin:       pb.SpeedMin,
			SpeedMax:       pb.SpeedMax,
			ResolveTimeout: pb.ResolveTimeout(),
			Continuous:     *pb.Continuous,
			Logger:         slog.Default(),
		},
	)
	defer svc.Close()

	sub := svc.Subscribe()
	go printSnapshots(sub)

	verses := make([]quran.Verse, 0, to-from+1)
	for v := from; v <= to; v++ {
		verses = append(verses, quran.Verse{
			ID:      quran.VerseID{Surah: surah, Verse: v},
			Ordinal: v,
		})
	}

	if err := svc.PlayQueue(verses, 0); err != nil {
		log.Fatal(errmsg.Format(errmsg.OpPlaybackStart, err))
	}

	fmt.Println("commands: space=pause/resume  n=next  p=previous  s <sec>=seek  x <ratio>=speed  r=retry  q=quit")
	readCommands(svc)
}

func printSnapshots(sub *recitation.Subscription) {
	for {
		select {
		case snap := <-sub.Snapshots:
			line := fmt.Sprintf("[%s]", snap.State)
			if v, ok := snap.Current.Verse(); ok {
				line += fmt.Sprintf(" %s (%d/%d)", v.ID, snap.VerseIndex+1, snap.QueueLen)
			}
			if snap.State == recitation.StatePlaying {
				line += fmt.Sprintf(" %.2fx", snap.Speed)
			}
			if snap.Err != "" {
				line += " " + snap.Err
			}
			fmt.Println(line)
		case <-sub.Done:
			return
		}
	}
}

func readCommands(svc recitation.Service) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		cmd := ""
		if len(fields) > 0 {
			cmd = fields[0]
		}

		switch cmd {
		case "", "space":
			svc.TogglePlayPause()
		case "n":
			svc.Next()
		case "p":
			svc.Previous()
		case "s":
			if len(fields) == 2 {
				if secs, err := strconv.ParseFloat(fields[1], 64); err == nil {
					svc.Seek(time.Duration(secs * float64(time.Second)))
				}
			}
		case "x":
			if len(fields) == 2 {
				if ratio, err := strconv.ParseFloat(fields[1], 64); err == nil {
					svc.SetSpeed(ratio)
				}
			}
		case "r":
			svc.Retry()
		case "q":
			svc.Stop()
			return
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}
