package config

import "github.com/spf13/pflag"

// BindTimingFlags registers per-run timing overrides. Flags default to the
// values already in t so unset flags leave the loaded config alone.
func BindTimingFlags(fs *pflag.FlagSet, t *TimingConfig) {
	fs.Float64Var(&t.InhaleSec, "inhale", t.InhaleSec, "Inhale length in seconds")
	fs.Float64Var(&t.HoldSec, "hold", t.HoldSec, "Hold length in seconds")
	fs.Float64Var(&t.ExhaleSec, "exhale", t.ExhaleSec, "Exhale length in seconds")
	fs.Float64Var(&t.GapSec, "gap", t.GapSec, "Pause between phases in seconds")
	fs.IntVar(&t.Beats, "beats", t.Beats, "Beats per inhale and exhale")
}

func BindServerFlags(fs *pflag.FlagSet, s *ServerConfig) {
	fs.StringVar(&s.Addr, "addr", s.Addr, "Listen address")
	fs.Float64Var(&s.RateLimit, "rate-limit", s.RateLimit, "Sustained API requests per second")
	fs.IntVar(&s.Burst, "burst", s.Burst, "API request burst size")
}
