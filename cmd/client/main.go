// Headless call client. Joins a consultation channel with synthetic
// audio/video and logs session state, for soak testing a running server
// from the command line.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/adapters/media"
	"github.com/forexorbit/academy-calls/internal/adapters/signalclient"
	"github.com/forexorbit/academy-calls/internal/callsession"
	"github.com/forexorbit/academy-calls/internal/domain"
)

type logSink struct {
	surface string
}

func (s logSink) Render(track callsession.RemoteTrack) {
	log.Info().Str("module", "client").Str("surface", s.surface).Str("track", track.ID()).Str("kind", string(track.Kind())).Msg("render")
}

func (s logSink) Clear() {
	log.Info().Str("module", "client").Str("surface", s.surface).Msg("clear")
}

type tokenResponse struct {
	Token   string `json:"token"`
	AppID   string `json:"app_id"`
	Channel string `json:"channel"`
}

// fetchToken trades a consultation id for a join token, identifying as
// one of the consultation's parties via the client token cookie.
func fetchToken(api, consultationID, identity string) (*tokenResponse, error) {
	body, err := json.Marshal(map[string]string{"consultation_id": consultationID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, api+"/api/token", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if identity != "" {
		req.AddCookie(&http.Cookie{Name: "ct", Value: identity})
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func main() {
	var (
		server       = flag.String("server", "ws://localhost:8080/api/ws/signal", "signal endpoint")
		api          = flag.String("api", "http://localhost:8080", "REST base URL, used when -consultation is set")
		appID        = flag.String("app", "academy-calls-dev", "application id")
		channel      = flag.String("channel", "", "channel name (from an accepted consultation)")
		tok          = flag.String("token", "", "join token")
		consultation = flag.String("consultation", "", "active consultation id to fetch a token for")
		identity     = flag.String("as", "", "party id (client token) when fetching via -consultation")
		name         = flag.String("name", "", "participant name")
		kind         = flag.String("kind", "voice", "call kind: voice or video")
		dur          = flag.Duration("duration", 0, "hang up after this long (0 = until interrupted)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *tok == "" && *consultation != "" {
		fetched, err := fetchToken(*api, *consultation, *identity)
		if err != nil {
			log.Fatal().Err(err).Str("module", "client").Msg("token fetch failed")
		}
		*tok = fetched.Token
		*channel = fetched.Channel
		if fetched.AppID != "" {
			*appID = fetched.AppID
		}
	}

	if *channel == "" || *tok == "" {
		fmt.Fprintln(os.Stderr, "either -channel and -token, or -consultation and -as, are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	transport := signalclient.New(*server)
	devices := media.NewSyntheticSource(ctx)
	session := callsession.NewSession(transport, devices)

	session.OnStateChange = func(state callsession.State, err error) {
		ev := log.Info().Str("module", "client").Str("state", string(state))
		if err != nil {
			ev = ev.Str("reason", callsession.Message(err))
		}
		ev.Msg("session state")
	}
	session.OnParticipantsChange = func(remotes []callsession.RemoteParticipant) {
		ev := log.Info().Str("module", "client").Int("count", len(remotes))
		for _, r := range remotes {
			ev = ev.Str("participant", r.ID)
		}
		ev.Msg("participants changed")
	}

	session.Sinks().Attach(callsession.SurfaceLocal, logSink{surface: callsession.SurfaceLocal})
	session.Sinks().Attach(callsession.SurfaceRemote, logSink{surface: callsession.SurfaceRemote})

	desc := callsession.Descriptor{
		AppID:         *appID,
		Channel:       *channel,
		Token:         *tok,
		ParticipantID: *name,
		Kind:          domain.CallKind(*kind),
	}

	if err := session.Start(ctx, desc); err != nil {
		log.Fatal().Err(err).Str("module", "client").Str("reason", callsession.Message(err)).Msg("call failed to start")
	}
	log.Info().Str("module", "client").Str("channel", *channel).Msg("in call")

	if *dur > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(*dur):
		}
	} else {
		<-ctx.Done()
	}

	session.End()
	log.Info().Str("module", "client").Msg("call ended")
}
