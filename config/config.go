package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of game pacing and the server side stores.
var (
	GridSize           = getEnvInt("GRID_SIZE", 20)
	TickInterval       = getEnvDuration("TICK_INTERVAL", 100*time.Millisecond)
	WalledTickInterval = getEnvDuration("WALLED_TICK_INTERVAL", 180*time.Millisecond)
	TetrisDropInterval = getEnvDuration("TETRIS_DROP_INTERVAL", 600*time.Millisecond)
	GameOverDelay      = getEnvDuration("GAME_OVER_DELAY", 2*time.Second)

	RemoteTimeout = getEnvDuration("REMOTE_TIMEOUT", 5*time.Second)
	StorageDir    = getEnvString("ARCADE_STORAGE_DIR", "")

	MaxOpenConns = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns = getEnvInt("MAX_IDLE_CONNS", 20)

	ContactRate  = rate.Limit(getEnvInt("CONTACT_RPS", 1))
	ContactBurst = getEnvInt("CONTACT_BURST", 5)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvDuration(varName string, defaults time.Duration) time.Duration {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaults
	}
	return d
}

func getEnvString(varName, defaults string) string {
	if val := os.Getenv(varName); val != "" {
		return val
	}
	return defaults
}
