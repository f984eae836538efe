// Package config holds the process configuration, loaded from the
// environment with envconfig. cmd/server loads a .env file first so local
// development matches deployment.
package config

import "time"

type Config struct {
	Debug bool   `envconfig:"PARTY_DEBUG" default:"false"`
	Port  string `envconfig:"PARTY_PORT" default:"8080"`

	// Room lifecycle.
	CodeCooldown    time.Duration `envconfig:"PARTY_CODE_COOLDOWN" default:"5s"`
	ClosedCodeCache int           `envconfig:"PARTY_CLOSED_CODE_CACHE" default:"256"`
	HostGracePeriod time.Duration `envconfig:"PARTY_HOST_GRACE_PERIOD" default:"0"`
	MaxRoomPlayers  int           `envconfig:"PARTY_MAX_ROOM_PLAYERS" default:"12"`
	MinPartyPlayers int           `envconfig:"PARTY_MIN_PARTY_PLAYERS" default:"4"`

	// Bot pacing.
	BotMinDelay time.Duration `envconfig:"PARTY_BOT_MIN_DELAY" default:"1s"`
	BotMaxDelay time.Duration `envconfig:"PARTY_BOT_MAX_DELAY" default:"5s"`

	// Phase timers.
	QuizQuestionTime      time.Duration `envconfig:"PARTY_QUIZ_QUESTION_TIME" default:"20s"`
	PresentTime           time.Duration `envconfig:"PARTY_PRESENT_TIME" default:"60s"`
	InvestTime            time.Duration `envconfig:"PARTY_INVEST_TIME" default:"30s"`
	WordPickTime          time.Duration `envconfig:"PARTY_WORD_PICK_TIME" default:"15s"`
	DrawTime              time.Duration `envconfig:"PARTY_DRAW_TIME" default:"80s"`
	RoundResultsTime      time.Duration `envconfig:"PARTY_ROUND_RESULTS_TIME" default:"8s"`
	CardTurnTime          time.Duration `envconfig:"PARTY_CARD_TURN_TIME" default:"30s"`
	CardPickColorTime     time.Duration `envconfig:"PARTY_CARD_PICK_COLOR_TIME" default:"15s"`
	CardStackingByDefault bool          `envconfig:"PARTY_CARD_STACKING" default:"true"`
}
