package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"snekarcade/ads"
	"snekarcade/highscore"
	"snekarcade/server"
)

func main() {
	cfg := server.DefaultConfig()

	addr := flag.String("addr", "0.0.0.0:10000", "listen address")
	data := flag.String("data", "data", "directory for the high score file, empty keeps scores in memory")
	testAds := flag.Bool("test-ads", true, "use the ad network's sample units")
	interstitialUnit := flag.String("interstitial-unit", "", "production interstitial unit id")
	rewardedUnit := flag.String("rewarded-unit", "", "production rewarded unit id")
	bannerUnit := flag.String("banner-unit", "", "production banner unit id")
	flag.Float64Var(&cfg.Ads.FillRate, "ad-fill", cfg.Ads.FillRate, "probability an ad load succeeds")
	flag.DurationVar(&cfg.Ads.Latency, "ad-latency", cfg.Ads.Latency, "time for an ad to load")
	flag.DurationVar(&cfg.Ads.Duration, "ad-duration", cfg.Ads.Duration, "time an ad stays on screen")
	flag.IntVar(&cfg.Engine.InterstitialEvery, "interstitial-every", cfg.Engine.InterstitialEvery, "show an interstitial after every N games, 0 disables")
	flag.IntVar(&cfg.Engine.MaxContinues, "continues", cfg.Engine.MaxContinues, "continues allowed per game")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg.Units = ads.UnitsFor(ads.Units{
		Banner:       *bannerUnit,
		Interstitial: *interstitialUnit,
		Rewarded:     *rewardedUnit,
	}, *testAds)

	var store highscore.Store = &highscore.MemoryStore{}
	if *data != "" {
		fs := highscore.NewFileStore(filepath.Join(*data, "highscores.json"))
		log.Printf("high scores at %s", fs.Path())
		store = fs
	}
	srv := server.New(cfg, highscore.NewBoard(store))

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("snek listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
